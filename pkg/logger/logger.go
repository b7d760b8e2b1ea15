package logger

import (
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"oroweb/conf"
)

// 基于zap的全局logger，文件输出走lumberjack滚动

var (
	l *zap.Logger
	s *zap.SugaredLogger
)

func init() {
	// 未Init之前（包括单测）退化为控制台输出
	l, _ = zap.NewDevelopment(zap.AddCallerSkip(1))
	s = l.Sugar()
}

func Init(cfg *conf.LogConfig) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(timeFormat))
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := make([]zapcore.Core, 0, 2)
	if cfg.FileName != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level))
	}
	if cfg.Console || cfg.FileName == "" {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level))
	}

	l = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	s = l.Sugar()
}

// Pair 构造一个结构化字段
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Debug(msg string, fields ...zap.Field) { l.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { l.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { l.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { l.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { l.Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { s.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { s.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { s.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { s.Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { s.Fatalf(format, args...) }

// Sync 进程退出前刷盘
func Sync() error {
	return multierr.Append(l.Sync(), s.Sync())
}
