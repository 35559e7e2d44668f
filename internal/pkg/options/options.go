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

// Package options holds the option sets shared by the service binaries.
//
// Every option set follows the same shape: NewOptions returns defaults,
// AddFlags registers dotted flags ("grpc.addr"), Complete fills derived values
// and Validate returns every problem it finds.
package options

import "github.com/spf13/pflag"

// CliOptions is the option set of a whole binary.
type CliOptions interface {
	AddFlags(fs *pflag.FlagSet)
	Complete() error
	Validate() error
}
