package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(env string, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Actor-ID"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1/payroll", func(r chi.Router) {
		r.Route("/periods", func(r chi.Router) {
			r.Post("/", payrollHandler.CreatePeriod)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetPeriod)
				r.Get("/entries", payrollHandler.ListEntries)
				r.Post("/generate", payrollHandler.GeneratePayroll)
				r.Post("/approve", payrollHandler.ApprovePeriod)
				r.Post("/process", payrollHandler.ProcessPeriod)
			})
		})

		r.Patch("/entries/{id}", payrollHandler.UpdateEntry)

		r.Get("/components", payrollHandler.ListComponents)
		r.Get("/components/{id}", payrollHandler.GetComponent)
		r.Get("/tax-brackets", payrollHandler.ListTaxBrackets)
	})
	return r
}
