package configs

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config concentra todo el entorno en una sola estructura tipada.
type Config struct {
	Port string `env:"PORT" envDefault:"3000"`

	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"require"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret string `env:"JWT_SECRET"`

	// Cron del motor de estados. El motor ya no corre en cada request;
	// solo lo dispara el scheduler.
	StatusCron string `env:"STATUS_CRON" envDefault:"* * * * *"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	FromEmail    string `env:"DEFAULT_FROM_EMAIL" envDefault:"eventos@gobierno.local"`
	AdminEmail   string `env:"ADMIN_EMAIL"`

	// Carpeta local para los PDF de los eventos.
	MediaDir string `env:"MEDIA_DIR" envDefault:"./media/eventos"`
}

var App Config

// LoadEnv carga .env (si existe) y parsea el entorno hacia App.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No se encontró archivo .env, se usa el ENV del sistema")
	} else {
		log.Println("✅ Archivo .env cargado")
	}

	if err := env.Parse(&App); err != nil {
		log.Fatalf("❌ Error al parsear el entorno: %v", err)
	}

	if App.JWTSecret == "" {
		log.Println("❌ JWT_SECRET no está configurado")
	}
}
