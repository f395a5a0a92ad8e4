// Package logger 为 TUI 进程提供文件日志
// 终端被 bubbletea 占用，调试输出必须落盘而不是写到 stdout
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

const (
	logDirName  = ".roshambo"
	logFileName = "debug.log"

	// 超过该大小时轮转，旧文件按时间戳改名保留
	maxLogSize = 10 << 20
)

var (
	logFile *os.File
	logPath string
)

// Init 打开日志文件并接管标准库 log 的输出
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	dir := filepath.Join(home, logDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	logPath = filepath.Join(dir, logFileName)
	rotateIfOversized(dir)

	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	LogInfo("logging to %s", logPath)
	return nil
}

// rotateIfOversized 在打开前检查大小，轮转失败不阻止启动
func rotateIfOversized(dir string) {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	backup := filepath.Join(dir, fmt.Sprintf("%s.%d", logFileName, time.Now().Unix()))
	_ = os.Rename(logPath, backup)
}

// Close 关闭日志文件
func Close() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

// LogInfo 记录普通信息
func LogInfo(format string, args ...any) {
	log.Printf("[INFO] "+format, args...)
}

// LogError 记录错误
func LogError(format string, args ...any) {
	log.Printf("[ERROR] "+format, args...)
}

// LogPanic 记录 panic 和堆栈
func LogPanic(r any) {
	log.Printf("[PANIC] %v\n%s", r, debug.Stack())
}

// GetLogPath 返回当前日志文件路径
func GetLogPath() string {
	return logPath
}
