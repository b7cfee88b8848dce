package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/biblioteca/internal/metrics"
)

// MetricsInterceptor counts and times every RPC by procedure and result code.
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.ObserveRPC(procedure, code, time.Since(start))
			return resp, err
		}
	}
}
