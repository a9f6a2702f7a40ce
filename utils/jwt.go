package utils

import (
	"log"
	"os"
	"strconv"
)

var (
	JWTSecretKey             string
	JWTExpirationTime        int64
	ResetTokenExpirationTime int64
)

func InitJWT() {

	// For tests, use default values if environment variables aren't set
	if os.Getenv("GO_ENV") == "test" {
		if os.Getenv("JWT_SECRET_KEY") == "" {
			os.Setenv("JWT_SECRET_KEY", "test_secret_key")
		}
		if os.Getenv("JWT_EXPIRATION_TIME") == "" {
			os.Setenv("JWT_EXPIRATION_TIME", "86400")
		}
		if os.Getenv("RESET_TOKEN_EXPIRATION_TIME") == "" {
			os.Setenv("RESET_TOKEN_EXPIRATION_TIME", "3600")
		}
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT Secret Key not set")
	}

	jwtExpiration := os.Getenv("JWT_EXPIRATION_TIME")
	if jwtExpiration == "" {
		log.Fatal("JWT Expiration Time not set")
	}

	var err error
	JWTExpirationTime, err = strconv.ParseInt(jwtExpiration, 10, 64)
	if err != nil {
		log.Fatal("Error parsing JWT expiration time")
	}

	resetExpiration := os.Getenv("RESET_TOKEN_EXPIRATION_TIME")
	if resetExpiration == "" {
		log.Fatal("Reset Token Expiration Time not set")
	}

	ResetTokenExpirationTime, err = strconv.ParseInt(resetExpiration, 10, 64)
	if err != nil {
		log.Fatal("Error parsing reset token expiration time")
	}
}
