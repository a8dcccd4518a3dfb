package container

import (
	"github.com/sirupsen/logrus"

	app "fracture-tutor/internal/application"
	"fracture-tutor/internal/domain/port"
	"fracture-tutor/internal/engine/metrics"
)

// Options параметры сравнения, пришедшие из конфигурации
type Options struct {
	IoUThreshold        float64
	MinBoxSize          float64
	RequireFractureType bool
}

// Deps внешние зависимости сервисов
type Deps struct {
	Users       port.UserRepository
	Inspector   port.ImageInspector
	Reference   port.ReferenceSource
	Sink        port.SubmissionSink
	Submissions port.SubmissionSource
	Store       port.ComparisonStore
	Renderer    port.OverlayRenderer
}

type Container struct {
	UserService       *app.UserService
	AnnotationService *app.AnnotationService
	ComparisonService *app.ComparisonService
	HistoryService    *app.HistoryService
}

func New(deps Deps, opts Options, log logrus.FieldLogger) *Container {
	userService := app.NewUserService(deps.Users)
	annotationService := app.NewAnnotationService(userService, deps.Inspector, opts.MinBoxSize)
	comparisonService := app.NewComparisonService(
		userService,
		annotationService,
		deps.Reference,
		deps.Sink,
		deps.Store,
		deps.Renderer,
		metrics.NewCalculator(opts.IoUThreshold),
		log,
	)
	comparisonService.RequireFractureType = opts.RequireFractureType
	comparisonService.Submissions = deps.Submissions

	return &Container{
		UserService:       userService,
		AnnotationService: annotationService,
		ComparisonService: comparisonService,
		HistoryService:    app.NewHistoryService(deps.Store, log),
	}
}
