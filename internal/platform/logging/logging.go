package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup routes the standard logger to stderr and, when dir is non-empty,
// also to a size-rotated file in dir. The returned closer flushes the file.
func Setup(dir string, name string) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if dir == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil)
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, name+".log"),
		MaxSize:    32, // MB
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, w))
	return w
}
