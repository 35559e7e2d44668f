/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package code provides parsing, normalization and validation for the
// machine-readable error codes exposed to clients.
//
// Two families of codes share this type:
//
//   - kind codes (VALIDATION_ERROR, NOT_FOUND, ...), one per domain error kind,
//     plus the structural fallback classes used for errors outside the taxonomy;
//   - catalog codes (ORDER_NOT_FOUND, INVALID_CUSTOMER, ...), declared by each
//     service next to its error catalog.
//
// Codes are short, stable, UPPER_SNAKE_CASE and suitable for client-side
// branching.
package code
