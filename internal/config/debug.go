package config

import "os"

func IsDebug() bool {
	return os.Getenv("DOBBY_DEBUG") == "1"
}
