package service

import (
	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/repository"
)

type DashboardService struct {
	Courses   *repository.CourseRepository
	Surveys   *repository.SurveyRepository
	Responses *repository.ResponseRepository
}

func NewDashboardService(courses *repository.CourseRepository, surveys *repository.SurveyRepository, responses *repository.ResponseRepository) *DashboardService {
	return &DashboardService{Courses: courses, Surveys: surveys, Responses: responses}
}

type DashboardSummary struct {
	CourseCount     int64                        `json:"courseCount"`
	SurveyCounts    map[model.SurveyStatus]int64 `json:"surveyCounts"`
	RecentResponses []model.Response             `json:"recentResponses"`
}

func (s *DashboardService) Summary() (*DashboardSummary, error) {
	courseCount, err := s.Courses.Count()
	if err != nil {
		return nil, err
	}
	surveyCounts, err := s.Surveys.CountByStatus()
	if err != nil {
		return nil, err
	}
	recent, err := s.Responses.ListRecent(10)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		CourseCount:     courseCount,
		SurveyCounts:    surveyCounts,
		RecentResponses: recent,
	}, nil
}
