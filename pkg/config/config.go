package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo .env). Los flags de la CLI tienen prioridad sobre
// todo lo leído aquí.
type Config struct {
	App       AppConfig
	Inventory InventoryConfig
	HTTP      HTTPConfig
	Log       LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, production
	Name string
}

// InventoryConfig ubica el inventario en disco.
type InventoryConfig struct {
	Name    string // prefijo de los archivos de datos ("default" → default_types.json)
	Workdir string // directorio de trabajo
	Backend string // json | sqlite
}

// DBPath devuelve la ruta de la base SQLite para el backend sqlite.
func (c InventoryConfig) DBPath() string {
	return filepath.Join(c.Workdir, c.Name+".db")
}

// LogConfig configuración del logger.
type LogConfig struct {
	Level string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP (subcomando serve).
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// un archivo .env en el directorio actual). Nombres esperados: APP_ENV,
// INVENTORY_NAME, INVENTORY_WORKDIR, INVENTORY_BACKEND, HTTP_HOST, HTTP_PORT,
// LOG_LEVEL.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración .env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "inventory-managoat"),
		},
		Inventory: InventoryConfig{
			Name:    getString(v, "INVENTORY_NAME", "default"),
			Workdir: getString(v, "INVENTORY_WORKDIR", defaultWorkdir()),
			Backend: getString(v, "INVENTORY_BACKEND", "json"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}
	return cfg, nil
}

// defaultWorkdir devuelve el directorio de datos por defecto
// (p. ej. ~/.config/inventory-managoat), o el directorio actual si no se
// puede determinar uno adecuado.
func defaultWorkdir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "inventory-managoat")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
