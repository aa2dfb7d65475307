package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classflow/backend/core/attendance"
	"github.com/classflow/backend/core/timetable"
)

type timetableAPI struct {
	deps ServerDeps
}

func registerTimetableAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := timetableAPI{deps: deps}

	tg := g.Group("/timetable", jwt)
	tg.GET("", api.templateRetrieve)
	tg.PUT("", api.templateUpdate)
	tg.GET("/overrides/:subject", api.overridesRetrieve)
	tg.PUT("/overrides/:subject", api.overridesUpdate)

	eg := g.Group("/events", jwt)
	eg.GET("", api.eventsRetrieve)
	eg.PUT("", api.eventsUpdate)

	pg := g.Group("/preferences", jwt)
	pg.GET("/target", api.targetRetrieve)
	pg.PUT("/target", api.targetUpdate)
}

func (api *timetableAPI) templateRetrieve(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}
	tmpl, err := api.deps.TimetableSvc.Template(ctx.Request().Context(), std.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tmpl)
}

func (api *timetableAPI) templateUpdate(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}

	tmpl := make(attendance.WeekTemplate)
	if err := ctx.Bind(&tmpl); err != nil {
		return err
	}
	if err := timetable.ValidateTemplate(api.deps.Validate, tmpl); err != nil {
		return err
	}

	if err := api.deps.TimetableSvc.SaveTemplate(ctx.Request().Context(), std.ID, tmpl); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tmpl)
}

func (api *timetableAPI) overridesRetrieve(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}
	overrides, err := api.deps.TimetableSvc.Overrides(ctx.Request().Context(), std.ID, ctx.Param("subject"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, overrides)
}

// overridesUpdate replaces the subject's override map. An empty map
// clears all overrides.
func (api *timetableAPI) overridesUpdate(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}

	overrides := make(attendance.OverrideMap)
	if err := ctx.Bind(&overrides); err != nil {
		return err
	}
	if err := timetable.ValidateOverrides(overrides); err != nil {
		return err
	}

	if err := api.deps.TimetableSvc.SaveOverrides(ctx.Request().Context(), std.ID, ctx.Param("subject"), overrides); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, overrides)
}

func (api *timetableAPI) eventsRetrieve(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}
	events, err := api.deps.TimetableSvc.Events(ctx.Request().Context(), std.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *timetableAPI) eventsUpdate(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}

	events := make([]attendance.EventBlock, 0)
	if err := ctx.Bind(&events); err != nil {
		return err
	}
	if err := timetable.ValidateEvents(events); err != nil {
		return err
	}

	if err := api.deps.TimetableSvc.SaveEvents(ctx.Request().Context(), std.ID, events); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, events)
}

type targetPayload struct {
	Target float64 `json:"target"`
}

func (api *timetableAPI) targetRetrieve(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}
	target, err := api.deps.TimetableSvc.Target(ctx.Request().Context(), std.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, targetPayload{Target: target})
}

func (api *timetableAPI) targetUpdate(ctx echo.Context) error {
	std, err := getContextStudent(ctx, api.deps.StudentSvc)
	if err != nil {
		return err
	}

	data := new(targetPayload)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := timetable.ValidateTarget(data.Target); err != nil {
		return err
	}

	if err := api.deps.TimetableSvc.SaveTarget(ctx.Request().Context(), std.ID, data.Target); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, data)
}
