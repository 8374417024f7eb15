// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serializer writes collection reports as JSON, YAML or a table.
//
// # Formats
//
// JSON:
//   - Indented, machine-parseable
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Values implementing Tabular render themselves
//   - Any other value is flattened into a FIELD/VALUE listing
//
// # Usage
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	if err := w.Serialize(ctx, report); err != nil {
//	    return err
//	}
//
// An empty path writes to stdout. Close is safe to call on stdout writers
// and more than once.
package serializer
