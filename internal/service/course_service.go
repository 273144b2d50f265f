package service

import (
	"errors"
	"time"

	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/repository"
	"hrd_survey_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	Repo *repository.CourseRepository
}

func NewCourseService(repo *repository.CourseRepository) *CourseService {
	return &CourseService{Repo: repo}
}

type CourseRequest struct {
	Title              string     `json:"title" binding:"required"`
	Objectives         string     `json:"objectives"`
	Content            string     `json:"content"`
	Instructor         string     `json:"instructor"`
	StartDate          *time.Time `json:"startDate"`
	EndDate            *time.Time `json:"endDate"`
	TargetParticipants int        `json:"targetParticipants"`
}

func (s *CourseService) Create(req CourseRequest, creatorID uint) (*model.Course, error) {
	course := &model.Course{
		Title:              req.Title,
		Objectives:         req.Objectives,
		Content:            req.Content,
		Instructor:         req.Instructor,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		TargetParticipants: req.TargetParticipants,
		CreatorID:          creatorID,
	}
	if err := s.Repo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List(page, limit int, keyword string) ([]model.Course, int64, error) {
	return s.Repo.List(page, limit, keyword)
}

func (s *CourseService) Update(id uint, req CourseRequest) (*model.Course, error) {
	course, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Objectives = req.Objectives
	course.Content = req.Content
	course.Instructor = req.Instructor
	course.StartDate = req.StartDate
	course.EndDate = req.EndDate
	course.TargetParticipants = req.TargetParticipants

	if err := s.Repo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
