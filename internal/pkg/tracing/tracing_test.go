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

package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledProviderRecordsNothing(t *testing.T) {
	p, err := NewProvider(nil)
	require.NoError(t, err)

	_, span := p.Tracer("test").Start(context.Background(), "op")
	span.End()
	assert.True(t, span.SpanContext().IsValid())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestEnabledProviderExportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	opts := NewOptions()
	opts.Enabled = true
	opts.ServiceName = "order-service"
	opts.Output = &buf

	p, err := NewProvider(opts)
	require.NoError(t, err)

	_, span := p.Tracer("test").Start(context.Background(), "CreateOrder")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "CreateOrder")
	assert.Contains(t, buf.String(), "order-service")
}

func TestValidate(t *testing.T) {
	opts := NewOptions()
	assert.Empty(t, opts.Validate())

	opts.Enabled = true
	opts.SamplerRatio = 2
	assert.Len(t, opts.Validate(), 2)

	_, err := NewProvider(opts)
	assert.Error(t, err)
}
