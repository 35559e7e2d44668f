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

package gateway

import (
	"context"
	"time"

	"dirpx.dev/commerce/grpcx"
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// requestContext gives every request a correlation id (echoed in the
// x-correlation-id header) and a server span.
func (g *Gateway) requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(grpcx.CorrelationHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Header(grpcx.CorrelationHeader, id)

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx, span := g.tracer.Start(c.Request.Context(), c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("commerce.correlation_id", id),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(context.WithValue(ctx, correlationKey{}, id))
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
	}
}

func (g *Gateway) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("correlation_id", correlationID(c.Request.Context())),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			g.log.Error("http request", fields...)
		case status >= 400:
			g.log.Warn("http request", fields...)
		default:
			g.log.Info("http request", fields...)
		}
	}
}
