package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

type LogAdditionalParts struct {
}

func GetLogger(logger *logrus.Logger, name string, parts *LogAdditionalParts) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"name":  name,
		"parts": parts,
	})
}

func RegisterLoggerFormater(logger *logrus.Logger) {
	logger.SetFormatter(&ColorfulFormatter{})
}

type ColorfulFormatter struct {
}

func (f *ColorfulFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var levelColor *color.Color
	switch entry.Level {
	case logrus.DebugLevel, logrus.TraceLevel:
		levelColor, _ = hexToColor("4caf50")
	case logrus.InfoLevel:
		levelColor, _ = hexToColor("2196f3")
	case logrus.WarnLevel:
		levelColor, _ = hexToColor("ffeb3b")
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelColor, _ = hexToColor("f44336")
	default:
		levelColor, _ = hexToColor("ffffff")
	}
	name := "main"
	if n, ok := entry.Data["name"].(string); ok {
		name = n
	}
	return []byte(
		fmt.Sprintf(
			"%s | %s | %s | %s\n",
			entry.Time.Format(time.RFC3339),
			levelColor.Sprint(strings.ToUpper(entry.Level.String()[0:4])),
			strings.ToLower(name),
			entry.Message,
		),
	), nil
}

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// ANSIStrip removes color escape sequences before log lines hit the file.
func ANSIStrip(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}
