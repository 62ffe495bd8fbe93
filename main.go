package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "invoice-engine/internal/config"
	router "invoice-engine/internal/http"
	"invoice-engine/internal/http/handlers"
	"invoice-engine/internal/invoice"
	"invoice-engine/internal/mailer"
	"invoice-engine/internal/render"
	"invoice-engine/internal/repositories"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	loader := render.URLLoader{Client: &http.Client{Timeout: env.Invoice.AssetTimeout}}
	dispatcher := mailer.NewDispatcher(mailer.Config{
		FromAddress:        env.Mail.FromAddress,
		FromName:           env.Mail.FromName,
		TemplateID:         env.Mail.TemplateID,
		MaxAttachmentBytes: env.Mail.MaxAttachmentBytes(),
	}, mailer.SendGridProvider{APIKey: env.Mail.SendGridAPIKey, Host: env.Mail.SendGridHost})

	deps := router.Deps{
		Invoices: handlers.InvoiceHandler{
			Records: repositories.InvoiceRepository{DB: db},
			Composer: invoice.NewComposer(invoice.Company{
				Name:    env.Company.Name,
				Address: env.Company.Address,
				TaxID:   env.Company.TaxID,
				Phone:   env.Company.Phone,
			}),
			Surfaces: render.RasterSurfaceFactory(render.RasterConfig{
				LogoRef:  env.Invoice.LogoURL,
				StampRef: env.Invoice.StampURL,
			}, loader),
			AssetTimeout: env.Invoice.AssetTimeout,
			FlowMode:     env.Invoice.FlowMode(),
			Mailer:       dispatcher,
		},
		Auth: handlers.AuthHandler{
			Users:  repositories.UserRepository{DB: db},
			Secret: []byte(env.JWTSecret),
		},
	}

	r := router.NewRouter(env, deps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s (render mode: %s)", env.AppAddr, env.Invoice.RenderMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}
