// @title HRD 설문 백엔드 API
// @version 1.0
// @description 교육 과정 설문 관리 백엔드 서버.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"hrd_survey_backend/internal/app"
	"hrd_survey_backend/internal/config"
	"hrd_survey_backend/pkg/configwatcher"
	"hrd_survey_backend/pkg/logger"
)

func main() {
	// 커맨드라인 인자
	migrateOnly := flag.Bool("migrate-only", false, "데이터베이스 마이그레이션만 수행하고 종료한다")
	migrate := flag.Bool("migrate", false, "기동 시 마이그레이션을 강제 수행한다 (release 모드 포함)")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("데이터베이스 마이그레이션 완료, 프로그램을 종료합니다")
		return
	}

	// 설정 파일 변경 감시 (AI 자격 증명 핫리로드)
	go configwatcher.WatchConfig("configs/config.yaml", application.ApplyConfig)

	application.Run()
}
