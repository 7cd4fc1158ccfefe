package http

import (
	"time"

	"github.com/google/uuid"

	"voicetask/internal/extraction"
	"voicetask/internal/model"
	"voicetask/pkg/priority"
)

// --- Request DTOs ---

type extractReq struct {
	Transcript string `json:"transcript" binding:"required"`
}

func (r extractReq) toInput() extraction.ExtractInput {
	return extraction.ExtractInput{Transcript: r.Transcript}
}

type confirmDraftReq struct {
	ID                  string     `json:"id"    binding:"required,uuid"`
	Title               string     `json:"title" binding:"required,min=1,max=500"`
	DueAt               *time.Time `json:"due_at"`
	Address             string     `json:"address"  binding:"max=500"`
	Priority            string     `json:"priority" binding:"omitempty,oneof=normal important urgent"`
	ReminderEnabled     bool       `json:"reminder_enabled"`
	ReminderLeadMinutes int        `json:"reminder_lead_minutes" binding:"omitempty,min=1,max=1440"`
}

type confirmReq struct {
	Drafts []confirmDraftReq `json:"drafts" binding:"required,min=1,dive"`
}

func (r confirmReq) toInput() extraction.ConfirmInput {
	drafts := make([]model.TaskDraft, 0, len(r.Drafts))
	for _, d := range r.Drafts {
		lead := d.ReminderLeadMinutes
		if lead <= 0 {
			lead = model.DefaultReminderLeadMinutes
		}
		drafts = append(drafts, model.TaskDraft{
			ID:                  uuid.MustParse(d.ID), // validated by binding
			Title:               d.Title,
			DueAt:               d.DueAt,
			Address:             d.Address,
			Priority:            priority.ParsePriority(d.Priority),
			ReminderEnabled:     d.ReminderEnabled,
			ReminderLeadMinutes: lead,
		})
	}
	return extraction.ConfirmInput{Drafts: drafts}
}

// --- Response DTOs ---

type draftResp struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	DueAt               *time.Time `json:"due_at,omitempty"`
	Address             string     `json:"address,omitempty"`
	Priority            string     `json:"priority"`
	ReminderEnabled     bool       `json:"reminder_enabled"`
	ReminderLeadMinutes int        `json:"reminder_lead_minutes"`
}

type extractResp struct {
	Drafts    []draftResp `json:"drafts"`
	TaskCount int         `json:"task_count"`
}

func (h *handler) newExtractResp(out extraction.ExtractOutput) extractResp {
	drafts := make([]draftResp, 0, len(out.Drafts))
	for _, d := range out.Drafts {
		drafts = append(drafts, draftResp{
			ID:                  d.ID.String(),
			Title:               d.Title,
			DueAt:               d.DueAt,
			Address:             d.Address,
			Priority:            d.Priority.String(),
			ReminderEnabled:     d.ReminderEnabled,
			ReminderLeadMinutes: d.ReminderLeadMinutes,
		})
	}
	return extractResp{Drafts: drafts, TaskCount: out.TaskCount}
}

type coordinateResp struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type confirmedTaskResp struct {
	TaskID       string          `json:"task_id"`
	Title        string          `json:"title"`
	CalendarLink string          `json:"calendar_link,omitempty"`
	Coordinate   *coordinateResp `json:"coordinate,omitempty"`
	ReminderAt   *time.Time      `json:"reminder_at,omitempty"`
}

type confirmResp struct {
	Tasks     []confirmedTaskResp `json:"tasks"`
	TaskCount int                 `json:"task_count"`
}

func (h *handler) newConfirmResp(out extraction.ConfirmOutput) confirmResp {
	tasks := make([]confirmedTaskResp, 0, len(out.Tasks))
	for _, t := range out.Tasks {
		resp := confirmedTaskResp{
			TaskID:       t.TaskID.String(),
			Title:        t.Title,
			CalendarLink: t.CalendarLink,
			ReminderAt:   t.ReminderAt,
		}
		if t.Coordinate != nil {
			resp.Coordinate = &coordinateResp{Lat: t.Coordinate.Lat, Lon: t.Coordinate.Lon}
		}
		tasks = append(tasks, resp)
	}
	return confirmResp{Tasks: tasks, TaskCount: out.TaskCount}
}
