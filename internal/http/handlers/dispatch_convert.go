package handlers

import (
	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/service/eta"
)

func (c *criteriaDTO) toModel() domain.AssignmentCriteria {
	var out domain.AssignmentCriteria
	if c == nil {
		return out
	}
	if c.MaxDistanceKm != nil {
		out.MaxDistanceKm = *c.MaxDistanceKm
	}
	if c.MinRating != nil {
		out.MinRating = *c.MinRating
	}
	if c.PreferRating != nil {
		out.PreferRating = *c.PreferRating
	}
	return out
}

func resultToResponse(res domain.AssignmentResult) assignmentResultDTO {
	return assignmentResultDTO{
		Assigned:         res.Assigned,
		OrderID:          res.OrderID,
		DriverID:         res.DriverID,
		DriverName:       res.DriverName,
		DistanceKm:       res.DistanceKm,
		EstimatedMinutes: res.EstimatedMinutes,
		Reason:           res.Reason,
	}
}

func batchToResponse(b domain.BatchResult) batchResultDTO {
	results := make([]assignmentResultDTO, 0, len(b.Results))
	for _, r := range b.Results {
		results = append(results, resultToResponse(r))
	}
	return batchResultDTO{
		Total:    b.Total,
		Assigned: b.Assigned,
		Failed:   b.Failed,
		Results:  results,
	}
}

func estimateToResponse(e eta.Estimate) etaResponse {
	return etaResponse{
		OrderID:          e.OrderID,
		DriverID:         e.DriverID,
		DistanceKm:       e.DistanceKm,
		EstimatedMinutes: e.Minutes,
		Source:           e.Source,
	}
}
