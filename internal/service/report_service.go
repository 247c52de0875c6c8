package service

import (
	"context"

	"github.com/MalditoKM/Asistent-Restaurant/internal/apierror"
	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/dto"
	"github.com/MalditoKM/Asistent-Restaurant/internal/worker"

	"github.com/google/uuid"
)

// ReportService queues async sales exports for the caller's resolved scope.
type ReportService interface {
	EnqueueSalesReport(ctx context.Context, scope authz.Scope, req dto.SalesReportRequest) (*dto.SalesReportResponse, error)
}

type reportService struct {
	dispatcher *worker.Dispatcher
}

func NewReportService(dispatcher *worker.Dispatcher) ReportService {
	return &reportService{dispatcher: dispatcher}
}

func (s *reportService) EnqueueSalesReport(ctx context.Context, scope authz.Scope, req dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	var restaurantID *uuid.UUID
	if id, ok := scope.RestaurantID(); ok {
		restaurantID = &id
	}

	fileName := worker.FileNameFor(restaurantID)
	job := worker.ReportJob{
		FileName:     fileName,
		RestaurantID: restaurantID,
		From:         req.From,
		To:           req.To,
	}
	if err := s.dispatcher.EnqueueReport(ctx, job); err != nil {
		return nil, apierror.Transaction(err)
	}
	return &dto.SalesReportResponse{FileName: fileName, Status: "queued"}, nil
}
