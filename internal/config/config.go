package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	Uoms struct {
		Input  string
		Output string
		Table  string
	} `mapstructure:"uoms"`

	Header struct {
		Path    string
		Sheet   string
		Markers []string
	} `mapstructure:"header"`

	Products struct {
		Input          string
		FilteredOutput string `mapstructure:"filtered_output"`
		SQLOutput      string `mapstructure:"sql_output"`
		XLSXOutput     string `mapstructure:"xlsx_output"`
		Table          string
		UserID         int64 `mapstructure:"user_id"`
		SessionID      int64 `mapstructure:"session_id"`
	} `mapstructure:"products"`

	// Verify прогоняет сгенерированный SQL через SQLite в памяти
	Verify bool `mapstructure:"verify"`

	Postgres struct {
		DSN     string
		Apply   bool
		Migrate bool
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled  bool
		Textfile string
	} `mapstructure:"metrics"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`
}

// Имена таблиц, которые создают встроенные миграции.
const (
	MigratedUomsTable     = "uoms"
	MigratedProductsTable = "Product"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")

	v.SetDefault("uoms.input", "productUoms.json")
	v.SetDefault("uoms.output", "insert_uoms.sql")
	v.SetDefault("uoms.table", MigratedUomsTable)

	v.SetDefault("header.path", "Inventory Adjustment XLSX(13).xlsx")
	v.SetDefault("header.sheet", "")
	v.SetDefault("header.markers", []string{"Barcode", "Produk"})

	v.SetDefault("products.input", "cindy.json")
	v.SetDefault("products.filtered_output", "cindy_products.json")
	v.SetDefault("products.sql_output", "cindy_products.sql")
	v.SetDefault("products.xlsx_output", "")
	v.SetDefault("products.table", MigratedProductsTable)
	v.SetDefault("products.user_id", 80)
	v.SetDefault("products.session_id", 73)

	v.SetDefault("verify", true)

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.apply", false)
	v.SetDefault("postgres.migrate", false)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile", "")

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_chat_id", 0)
}

// Load читает YAML (если path не пустой), .env, переменные APP_* и флаги.
// Флаги называются как ключи конфига: --products.user_id=80.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	// .env необязателен
	_ = gotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, err
		}
	}
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return c, err
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) ValidateUoms() error {
	if c.Uoms.Input == "" || c.Uoms.Output == "" {
		return errors.New("uoms.input and uoms.output are required")
	}
	if c.Uoms.Table == "" {
		return errors.New("uoms.table is required")
	}
	if err := c.validateMigratedTable("uoms.table", c.Uoms.Table, MigratedUomsTable); err != nil {
		return err
	}
	return c.validatePostgres()
}

func (c Config) ValidateHeader() error {
	if c.Header.Path == "" {
		return errors.New("header.path is required")
	}
	if len(c.Header.Markers) == 0 {
		return errors.New("header.markers must not be empty")
	}
	for _, m := range c.Header.Markers {
		if strings.TrimSpace(m) == "" {
			return errors.New("header.markers must not contain blank values")
		}
	}
	return nil
}

func (c Config) ValidateProducts() error {
	p := c.Products
	if p.Input == "" || p.FilteredOutput == "" || p.SQLOutput == "" {
		return errors.New("products.input, products.filtered_output and products.sql_output are required")
	}
	if p.Table == "" {
		return errors.New("products.table is required")
	}
	if p.UserID <= 0 {
		return errors.New("products.user_id must be > 0")
	}
	if p.SessionID <= 0 {
		return errors.New("products.session_id must be > 0")
	}
	if err := c.validateMigratedTable("products.table", p.Table, MigratedProductsTable); err != nil {
		return err
	}
	return c.validatePostgres()
}

// миграции создают таблицы с фиксированными именами, другое имя при migrate
// означало бы вставку не в ту таблицу, что создана
func (c Config) validateMigratedTable(key, table, migrated string) error {
	if c.Postgres.Migrate && table != migrated {
		return fmt.Errorf("%s must be %q when postgres.migrate is set, got %q", key, migrated, table)
	}
	return nil
}

func (c Config) validatePostgres() error {
	if (c.Postgres.Apply || c.Postgres.Migrate) && c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required when postgres.apply or postgres.migrate is set")
	}
	return nil
}
