package app

import (
	"github.com/ferdiebergado/accountkit/internal/auth"
	"github.com/ferdiebergado/accountkit/internal/middleware"
	"github.com/ferdiebergado/accountkit/internal/platform/jwt"
	"github.com/ferdiebergado/accountkit/internal/platform/router"
	"github.com/ferdiebergado/accountkit/internal/platform/validation"
	"github.com/ferdiebergado/accountkit/internal/user"
)

func mountUserRoutes(r router.Router, handler *user.Handler, signer jwt.Signer) {
	r.Group("/users", func(gr router.Router) {
		gr.Get("/me", handler.Me)
	}, auth.RequireToken(signer))
}

func mountAuthRoutes(r router.Router, handler *auth.Handler, validator validation.Validator, limiter *middleware.RateLimiter, maxBodySize int64) {
	limit := middleware.RateLimit(limiter)

	r.Group("/auth", func(gr router.Router) {
		gr.Post("/register", handler.Register,
			limit,
			middleware.DecodePayload[auth.RegisterParams](maxBodySize))
		gr.Get("/confirm/{token}", handler.Confirm)
		gr.Post("/forgot", handler.ForgotPassword,
			limit,
			middleware.DecodePayload[auth.ForgotPasswordRequest](maxBodySize),
			middleware.ValidateInput[auth.ForgotPasswordRequest](validator))
		gr.Get("/reset/{token}", handler.VerifyResetToken)
		gr.Post("/reset/{token}", handler.ResetPassword,
			middleware.DecodePayload[auth.ResetPasswordParams](maxBodySize))
		gr.Post("/login", handler.Login,
			limit,
			middleware.DecodePayload[auth.LoginParams](maxBodySize),
			middleware.ValidateInput[auth.LoginParams](validator))
	})
}
