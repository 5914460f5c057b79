package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// SimpleLogger é uma implementação simples de Logger sobre o pacote log
type SimpleLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	warnLogger  *log.Logger
	debug       bool
}

// NewLogger cria uma nova instância de Logger. Mensagens de debug só são
// emitidas com LOG_LEVEL=debug.
func NewLogger() Logger {
	return newSimpleLogger(os.Stdout, os.Stderr, strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug"))
}

// NewWriterLogger cria um Logger que escreve tudo em w
func NewWriterLogger(w io.Writer, debug bool) Logger {
	return newSimpleLogger(w, w, debug)
}

func newSimpleLogger(out, errOut io.Writer, debug bool) *SimpleLogger {
	flags := log.Ldate | log.Ltime | log.Lmsgprefix
	return &SimpleLogger{
		infoLogger:  log.New(out, "INFO: ", flags),
		errorLogger: log.New(errOut, "ERROR: ", flags),
		debugLogger: log.New(out, "DEBUG: ", flags),
		warnLogger:  log.New(out, "WARN: ", flags),
		debug:       debug,
	}
}

// Info registra uma mensagem de informação
func (l *SimpleLogger) Info(msg string, keysAndValues ...interface{}) {
	l.infoLogger.Print(format(msg, keysAndValues))
}

// Error registra uma mensagem de erro
func (l *SimpleLogger) Error(msg string, keysAndValues ...interface{}) {
	l.errorLogger.Print(format(msg, keysAndValues))
}

// Debug registra uma mensagem de debug
func (l *SimpleLogger) Debug(msg string, keysAndValues ...interface{}) {
	if !l.debug {
		return
	}
	l.debugLogger.Print(format(msg, keysAndValues))
}

// Warn registra uma mensagem de aviso
func (l *SimpleLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.warnLogger.Print(format(msg, keysAndValues))
}

// format renderiza os pares chave/valor como "msg chave=valor ..."
func format(msg string, keysAndValues []interface{}) string {
	if len(keysAndValues) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		b.WriteByte(' ')
		if i+1 >= len(keysAndValues) {
			fmt.Fprintf(&b, "extra=%v", keysAndValues[i])
			break
		}
		fmt.Fprintf(&b, "%v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return b.String()
}

// Nop descarta todas as mensagens
type Nop struct{}

func (Nop) Info(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
func (Nop) Debug(string, ...interface{}) {}
func (Nop) Warn(string, ...interface{})  {}
