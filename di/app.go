package di

import (
	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/database"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/kafka"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/cache/broadcast"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console"

	goRedis "github.com/redis/go-redis/v9"
)

// App holds the entry point and every resource main has to release on shutdown.
type App struct {
	Config      *config.Config
	Console     *console.Console
	DB          *database.Connection
	Otel        otel.Otel
	Kafka       kafka.Client
	Redis       *goRedis.Client
	Broadcaster *broadcast.Broadcaster
}
