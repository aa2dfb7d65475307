package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/classflow/backend/core"
	"github.com/classflow/backend/core/attendance"
)

type (
	SyncRequest struct {
		Token string `json:"token" validate:"required"` // portal session token
	}

	TrajectoryResponse struct {
		Trajectory []attendance.TrajectoryPoint `json:"trajectory"`
		TodayIndex int                          `json:"today_index"`
		Stats      *attendance.Stats            `json:"stats"`
		Plan       *attendance.TargetPlan       `json:"plan,omitempty"`
	}

	attendanceAPI struct {
		deps ServerDeps
	}
)

func (r SyncRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := attendanceAPI{deps: deps}

	ag := g.Group("/attendance", jwt)
	ag.GET("/subjects", api.subjects)
	ag.POST("/sync", api.sync)
	ag.GET("/:subject/trajectory", api.trajectory)

	sg := g.Group("/sync", jwt)
	sg.GET("/status", api.syncStatus)
}

func (api *attendanceAPI) subjects(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}
	subjects, err := api.deps.AttendanceSvc.Subjects(ctx.Request().Context(), std.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subjects)
}

// sync kicks off a portal sync in the background and returns immediately;
// clients follow progress via GET /v1/sync/status.
func (api *attendanceAPI) sync(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}

	data := new(SyncRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	creds := core.PortalCredentials{Username: std.Username, Token: data.Token}
	go func() {
		// outlives the request on purpose
		if err := api.deps.Syncer.Sync(context.Background(), std, creds); err != nil {
			api.deps.Logger.Error(fmt.Sprintf("portal sync: %v", err), err, std)
		}
	}()

	return ctx.JSON(http.StatusAccepted, api.deps.Tracker.Current(std.ID))
}

func (api *attendanceAPI) syncStatus(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.deps.Tracker.Current(std.ID))
}

func (api *attendanceAPI) trajectory(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}
	subject := ctx.Param("subject")

	weeks := 0
	if raw := ctx.QueryParam("weeks"); raw != "" {
		weeks, err = strconv.Atoi(raw)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "weeks", Error: "must be an integer"})
		}
	}

	reqCtx := ctx.Request().Context()
	tmpl, err := api.deps.TimetableSvc.Template(reqCtx, std.ID)
	if err != nil {
		return err
	}
	overrides, err := api.deps.TimetableSvc.Overrides(reqCtx, std.ID, subject)
	if err != nil {
		return err
	}
	events, err := api.deps.TimetableSvc.Events(reqCtx, std.ID)
	if err != nil {
		return err
	}

	proj, err := api.deps.AttendanceSvc.Project(reqCtx, std.ID, subject, tmpl, overrides, events, weeks)
	if err != nil {
		return err
	}

	res := TrajectoryResponse{
		Trajectory: proj.Trajectory,
		TodayIndex: proj.TodayIndex,
		Stats:      proj.Stats,
	}
	if proj.Stats != nil {
		target, err := api.deps.TimetableSvc.Target(reqCtx, std.ID)
		if err != nil {
			return err
		}
		plan := attendance.PlanForTarget(proj.Stats.Current, target)
		res.Plan = &plan
	}
	return ctx.JSON(http.StatusOK, res)
}
