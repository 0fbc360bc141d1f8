package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

var (
	loggerOnce  sync.Once
	infoLogger  *log.Logger
	errorLogger *log.Logger
)

// initLoggers открывает файлы журнала при первом обращении.
// Каталог задается переменной POS_LOG_DIR, по умолчанию logs.
func initLoggers() {
	dir := os.Getenv("POS_LOG_DIR")
	if dir == "" {
		dir = "logs"
	}

	infoLogger = newFileLogger(filepath.Join(dir, "info.log"), "INFO: ")
	errorLogger = newFileLogger(filepath.Join(dir, "error.log"), "ERROR: ")
}

// newFileLogger создает логгер поверх файла; если файл открыть
// не удалось, записи уходят в stderr
func newFileLogger(path, prefix string) *log.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			return log.New(f, prefix, log.Ldate|log.Ltime)
		}
	}
	return log.New(os.Stderr, prefix, log.Ldate|log.Ltime)
}

// LogInfo пишет информационное сообщение в журнал операций
func LogInfo(format string, v ...interface{}) {
	loggerOnce.Do(initLoggers)
	infoLogger.Printf("%s - %s", caller(), fmt.Sprintf(format, v...))
}

// LogError пишет сообщение об ошибке в журнал ошибок
func LogError(format string, v ...interface{}) {
	loggerOnce.Do(initLoggers)
	errorLogger.Printf("%s - %s", caller(), fmt.Sprintf(format, v...))
}

func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "???"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
