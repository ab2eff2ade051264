package logger

import (
	"log"
	"os"
)

var (
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
)

func init() {
	// LOG_TAG distinguishes instances when several write to one stream
	// (e.g. "store-api-1" behind a load balancer). Empty means no tag.
	configure(os.Getenv("LOG_TAG"))
}

func configure(tag string) {
	if tag != "" {
		tag += " "
	}
	flags := log.Ldate | log.Ltime | log.Lshortfile
	infoLogger = log.New(os.Stdout, tag+"INFO: ", flags)
	warnLogger = log.New(os.Stdout, tag+"WARN: ", flags)
	errorLogger = log.New(os.Stderr, tag+"ERROR: ", flags)
}

func Info(msg string, v ...interface{}) {
	infoLogger.Printf(msg, v...)
}

func Warn(msg string, v ...interface{}) {
	warnLogger.Printf(msg, v...)
}

// Error logs msg with err appended when err is non-nil.
func Error(msg string, err error, v ...interface{}) {
	if err != nil {
		errorLogger.Printf(msg+": %v", append(v, err)...)
	} else {
		errorLogger.Printf(msg, v...)
	}
}
