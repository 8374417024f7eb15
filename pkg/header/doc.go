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

// Package header provides the envelope carried by every slurmtool document.
//
// A Header identifies the document type and schema version so consumers of
// JSON or YAML output can reject documents they do not understand:
//
//	{
//	  "kind": "NodeReport",
//	  "apiVersion": "slurmtool.nvidia.com/v1",
//	  "metadata": {
//	    "host": "login01"
//	  }
//	}
//
// Embed a Header inline (`yaml:",inline"`) to keep the fields at the top
// level of the document.
package header
