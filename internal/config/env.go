package config

import (
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Env is the whole process configuration. Values come from the process
// environment, optionally seeded from a .env file.
type Env struct {
	AppAddr            string   `env:"APP_ADDR" env-default:":8080"`
	GinMode            string   `env:"GIN_MODE"`
	DBDSN              string   `env:"DB_DSN" env-default:"root:@tcp(127.0.0.1:3306)/travel_app"`
	JWTSecret          string   `env:"JWT_SECRET" env-default:"super-secret-key-change-me"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`

	Mail    MailEnv
	Invoice InvoiceEnv
	Company CompanyEnv
}

type MailEnv struct {
	SendGridAPIKey  string `env:"SENDGRID_API_KEY"`
	SendGridHost    string `env:"SENDGRID_HOST"`
	TemplateID      string `env:"SENDGRID_TEMPLATE_ID"`
	FromAddress     string `env:"MAIL_FROM_ADDRESS" env-default:"billing@localhost"`
	FromName        string `env:"MAIL_FROM_NAME" env-default:"Billing"`
	MaxAttachmentMB int    `env:"MAIL_MAX_ATTACHMENT_MB" env-default:"10"`
	RatePerMinute   int    `env:"MAIL_RATE_PER_MINUTE" env-default:"30"`
}

type InvoiceEnv struct {
	RenderMode   string        `env:"INVOICE_RENDER_MODE" env-default:"raster"`
	AssetTimeout time.Duration `env:"INVOICE_ASSET_TIMEOUT" env-default:"3s"`
	LogoURL      string        `env:"INVOICE_LOGO_URL"`
	StampURL     string        `env:"INVOICE_STAMP_URL"`
}

type CompanyEnv struct {
	Name    string `env:"COMPANY_NAME" env-default:"Travel Agency"`
	Address string `env:"COMPANY_ADDRESS"`
	TaxID   string `env:"COMPANY_TAX_ID"`
	Phone   string `env:"COMPANY_PHONE"`
}

// MaxAttachmentBytes converts the MB setting into bytes.
func (m MailEnv) MaxAttachmentBytes() int64 {
	if m.MaxAttachmentMB <= 0 {
		return 0
	}
	return int64(m.MaxAttachmentMB) << 20
}

// FlowMode reports whether invoices are rendered directly to PDF pages
// instead of rasterized and sliced.
func (i InvoiceEnv) FlowMode() bool {
	return strings.EqualFold(strings.TrimSpace(i.RenderMode), "flow")
}

// LoadEnv loads .env when present and then reads the environment. A missing
// .env is normal in containers.
func LoadEnv() Env {
	if err := godotenv.Load(); err == nil {
		log.Println("Konfigurasi .env dimuat")
	}

	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		log.Fatalf("Gagal membaca konfigurasi: %v", err)
	}
	env.AppAddr = strings.TrimSpace(env.AppAddr)
	env.GinMode = strings.TrimSpace(env.GinMode)
	return env
}
