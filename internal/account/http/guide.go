package http

import (
	"net/http"
	"strconv"

	"github.com/heymumma/heymumma/internal/guide"
	"github.com/heymumma/heymumma/pkg/heysdk"
	"github.com/heymumma/heymumma/pkg/httpx"
)

// GuideWeekHandler godoc
//
//	@Summary		Get the guide for a week
//	@Description	Baby size, development notes, exercises and nutrition for one gestational week.
//	@Tags			Guide
//	@Produce		json
//	@Param			week	path		int					true	"Week, 1 to 40"
//	@Success		200		{object}	heysdk.GuideWeek	"Guide for the week"
//	@Failure		404		{object}	heysdk.APIError		"Week out of range"
//	@Router			/v1/guide/weeks/{week} [get].
func GuideWeekHandler(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("week"))
	if err != nil {
		heysdk.ErrWeekNotFound.WriteError(w)
		return
	}

	week, ok := guide.WeekGuide(n)
	if !ok {
		heysdk.ErrWeekNotFound.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, guideWeek(week))
}

// MilestonesHandler godoc
//
//	@Summary		List milestones
//	@Description	Notable developments grouped by trimester.
//	@Tags			Guide
//	@Produce		json
//	@Success		200	{object}	heysdk.MilestonesResponse	"Milestones by trimester"
//	@Router			/v1/guide/milestones [get].
func MilestonesHandler(w http.ResponseWriter, r *http.Request) {
	ms := guide.Milestones()
	resp := heysdk.MilestonesResponse{Milestones: make([]heysdk.Milestone, 0, len(ms))}
	for _, m := range ms {
		resp.Milestones = append(resp.Milestones, heysdk.Milestone{
			Trimester: m.Trimester,
			Name:      m.Name,
			Events:    m.Events,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func guideWeek(w guide.Week) heysdk.GuideWeek {
	return heysdk.GuideWeek{
		Week:           w.Week,
		Trimester:      w.Trimester,
		Title:          w.Title,
		Size:           w.Size,
		SizeComparison: w.SizeComparison,
		Weight:         w.Weight,
		Highlights:     w.Highlights,
		Details:        w.Details,
		WhatToExpect:   w.WhatToExpect,
		Tips:           w.Tips,
		Exercises:      w.Exercises,
		Nutrition: heysdk.Nutrition{
			FocusNutrients:   w.Nutrition.FocusNutrients,
			RecommendedFoods: w.Nutrition.RecommendedFoods,
			FoodsToAvoid:     w.Nutrition.FoodsToAvoid,
			Tips:             w.Nutrition.Tips,
		},
		WeightGain: w.WeightGain,
	}
}
