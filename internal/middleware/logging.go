package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor writes one access log line per unary call, tagged with
// the resolved actor. Coded client errors go out at WARN with their message;
// CodeInternal and uncoded errors go out at ERROR with the full error.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			userID := GetUserID(ctx)
			username := GetUsername(ctx)
			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					logger.WarnContext(ctx, "RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"user_id", userID,
						"username", username,
						"duration_ms", duration,
					)
				} else {
					logger.ErrorContext(ctx, "RPC error",
						"procedure", procedure,
						"error", err,
						"user_id", userID,
						"username", username,
						"duration_ms", duration,
					)
				}
			} else {
				logger.InfoContext(ctx, "RPC ok",
					"procedure", procedure,
					"user_id", userID,
					"username", username,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
