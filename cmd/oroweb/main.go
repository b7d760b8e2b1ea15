package main

import (
	"flag"
	"log"

	"oroweb/conf"
	"oroweb/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "YAML configuration")
	flag.Parse()

	// 加载配置文件
	if err := conf.LoadConfig(*cfgPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(&conf.AppConfig.Log)
	defer logger.Sync()

	r, cleanup, err := InitRouter(&conf.AppConfig)
	if err != nil {
		logger.Fatalf("init failed: %v", err)
	}

	srv := NewServer(&conf.AppConfig)
	srv.RegisterOnShutdown(cleanup)
	srv.Run(r)
}
