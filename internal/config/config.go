// Package config загружает конфигурацию банка из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
//
// Все константы экономики (приветственный бонус, награды игр, лимиты попыток)
// живут здесь и передаются в компоненты при создании. Никаких глобальных
// изменяемых настроек — в тестах конфиг подменяется целиком.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"bankuser"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"fkbbank"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	// Единый часовой пояс банка. От него считается «сегодня» для дневных
	// лимитов игр — все компоненты обязаны использовать одну и ту же зону,
	// иначе на границе полуночи лимиты поедут.
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Moscow"`

	// --- Admin ---
	AdminIDsRaw       string  `envconfig:"ADMIN_IDS" required:"true"`
	AdminIDs          []int64 `envconfig:"-"` // заполним вручную из AdminIDsRaw
	AdminPasswordHash string  `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`

	// --- Economy ---
	EconomyWelcomeBonus int64  `envconfig:"ECONOMY_WELCOME_BONUS" default:"100"`
	EconomyCurrencyName string `envconfig:"ECONOMY_CURRENCY_NAME" default:"коины"`

	// --- Promo ---
	PromoDefaultLength int `envconfig:"PROMO_DEFAULT_LENGTH" default:"8"`
	PromoMinLength     int `envconfig:"PROMO_MIN_LENGTH" default:"4"`
	PromoMaxLength     int `envconfig:"PROMO_MAX_LENGTH" default:"16"`

	// --- Игра «Угадай число» ---
	GuessMaxAttempts int   `envconfig:"GUESS_GAME_MAX_ATTEMPTS" default:"3"`
	GuessReward      int64 `envconfig:"GUESS_GAME_REWARD" default:"500"`
	GuessPenalty     int64 `envconfig:"GUESS_GAME_PENALTY" default:"100"`

	// --- Игра «Кубик» ---
	DiceMaxAttempts int   `envconfig:"DICE_GAME_MAX_ATTEMPTS" default:"1"`
	DiceMinReward   int64 `envconfig:"DICE_GAME_MIN_REWARD" default:"250"`
	DiceMaxReward   int64 `envconfig:"DICE_GAME_MAX_REWARD" default:"2500"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Location возвращает часовой пояс банка.
// Если зона из конфига не загрузилась — UTC+3 вручную.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

func (c *Config) Validate() error {
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.EconomyWelcomeBonus < 0 {
		return fmt.Errorf("ECONOMY_WELCOME_BONUS не может быть отрицательным")
	}
	if c.PromoMinLength < 1 || c.PromoMinLength > c.PromoMaxLength {
		return fmt.Errorf("некорректные PROMO_MIN_LENGTH/PROMO_MAX_LENGTH")
	}
	if c.PromoDefaultLength < c.PromoMinLength || c.PromoDefaultLength > c.PromoMaxLength {
		return fmt.Errorf("PROMO_DEFAULT_LENGTH вне диапазона [%d, %d]", c.PromoMinLength, c.PromoMaxLength)
	}
	if c.GuessMaxAttempts <= 0 || c.GuessReward <= 0 || c.GuessPenalty < 0 {
		return fmt.Errorf("некорректные настройки игры «Угадай число»")
	}
	if c.DiceMaxAttempts <= 0 || c.DiceMinReward <= 0 || c.DiceMaxReward < c.DiceMinReward {
		return fmt.Errorf("некорректные настройки игры «Кубик»")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.AdminIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS parse: %w", err)
	}
	cfg.AdminIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
