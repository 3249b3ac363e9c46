package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port              string
	DatabaseURL       string
	JWTSecret         []byte
	CORSOrigins       []string
	RequestTimeoutSec int
	DBMaxConns        int
	// Usuário único da aplicação (a profissional). Não há tabela de usuários.
	AppUsername     string
	AppPasswordHash string // bcrypt; se vazio, APP_PASSWORD em texto puro é aceito (dev)
	AppPassword     string
	// Horizonte de expansão das cadeias recorrentes, em dias.
	RecorrenciaHorizonteDias int
}

func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		jwtSecret = "default-secret-min-32-chars-required!!"
	}
	cors := os.Getenv("CORS_ORIGINS")
	if cors == "" {
		cors = "http://localhost:5173"
	}
	var origins []string
	for _, o := range strings.Split(cors, ",") {
		if t := strings.TrimSpace(o); t != "" {
			origins = append(origins, t)
		}
	}
	return &Config{
		Port:                     port,
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		JWTSecret:                []byte(jwtSecret),
		CORSOrigins:              origins,
		RequestTimeoutSec:        getEnvInt("REQUEST_TIMEOUT_SEC", 30),
		DBMaxConns:               getEnvInt("DB_MAX_CONNS", 0),
		AppUsername:              getEnv("APP_USERNAME", "admin"),
		AppPasswordHash:          os.Getenv("APP_PASSWORD_HASH"),
		AppPassword:              os.Getenv("APP_PASSWORD"),
		RecorrenciaHorizonteDias: getEnvInt("RECORRENCIA_HORIZONTE_DIAS", 365),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return d
	}
	return n
}
