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

// Package render formats node resource records as a fixed-width,
// color-coded table.
//
// Formatting is stateless: every function takes the record and a Policy and
// returns a string, so there is no process-wide color initialization.
// A disabled Policy produces plain text with identical column alignment.
//
// # Colors
//
//   - Node name: Down color when the node is down, drained or failing
//   - Fully idle row: every resource cell uses the Idle color
//   - Per resource: above HighThreshold uses High, zero uses Idle,
//     anything else uses Busy; a GPU node with no free GPUs uses High
//   - N/A cells use the Muted color
package render
