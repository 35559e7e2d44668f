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

// Package apis defines the small Go-level contracts shared by the error
// taxonomy, the status mapper and the transports.
//
// Transports (the gRPC interceptor, the HTTP writer) depend on these
// interfaces and view types instead of the concrete error type, so a service
// can plug in its own errors as long as they implement CodedError, SafeError
// and friends. The package holds only interfaces and small structs and must
// stay free of heavy dependencies.
package apis
