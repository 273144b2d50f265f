// 닫힌 설문 중 AI 분석이 없는 설문을 일괄 분석하는 스크립트
//
// 분석은 평소 관리자 화면에서 설문 단위로 실행되지만, AI 키를 나중에
// 설정했거나 대량 이관 후에는 이 스크립트로 한 번에 채울 수 있다.
//
// 사용법: go run scripts/backfill_analysis.go

package main

import (
	"context"
	"log"

	"hrd_survey_backend/internal/config"
	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/repository"
	"hrd_survey_backend/internal/service"
	"hrd_survey_backend/pkg/database"
	"hrd_survey_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("설정을 읽을 수 없습니다: %v", err)
	}

	logger.InitLogger(cfg)

	// 배치 스크립트는 스키마를 건드리지 않는다
	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("데이터베이스 연결 실패: %v", err)
	}

	surveyRepo := repository.NewSurveyRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	responseRepo := repository.NewResponseRepository(db)

	store := service.NewSurveyDataStore(surveyRepo, courseRepo, questionRepo, responseRepo)
	ai := service.NewAIService(cfg.AI)
	stats := service.NewStatsService(store, nil)
	analysis := service.NewAnalysisService(store, stats, ai)

	if !ai.IsConfigured() {
		log.Fatal("AI 서비스가 설정되지 않았습니다 (ai.api_key)")
	}

	var targets []model.Survey
	if err := db.Where("status = ? AND ai_summary = ''", model.SurveyClosed).Find(&targets).Error; err != nil {
		log.Fatalf("대상 설문 조회 실패: %v", err)
	}

	log.Printf("분석 대상 설문 %d개", len(targets))

	ctx := context.Background()
	done, skipped := 0, 0
	for _, sv := range targets {
		if _, err := analysis.AnalyzeSurvey(ctx, sv.ID); err != nil {
			log.Printf("설문 %d (%s) 건너뜀: %v", sv.ID, sv.Title, err)
			skipped++
			continue
		}
		done++
	}

	log.Printf("완료: 분석 %d개, 건너뜀 %d개", done, skipped)
}
