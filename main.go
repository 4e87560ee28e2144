// @title Task Maturity API
// @version 1.0
// @description 任务成熟度测评后端：作答收集、维度计分与分段、管理端报表。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"task_maturity_backend/internal/app"
	"task_maturity_backend/internal/config"
	"task_maturity_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移和种子数据写入，完成后退出")
	seedCatalog := flag.String("seed-catalog", "configs/catalog.yaml", "题库种子文件，题库为空时写入；传空字符串跳过")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.MigrateOnly = *migrateOnly
	cfg.CatalogFile = *seedCatalog

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Migration finished, exiting")
		return
	}

	application.Run()
}
