package handlers

import (
	"html/template"

	"github.com/go-playground/validator/v10"

	"devchatClient/internal/config"
	"devchatClient/internal/models"
	"devchatClient/internal/service"
	"devchatClient/internal/session"
)

type Handlers struct {
	AuthService    service.AuthService
	ThreadService  service.ThreadService
	MessageService service.MessageService
	VoteService    service.VoteService
	AdminService   service.AdminService
	HealthService  service.HealthService
	Store          *session.Store
	Cfg            *config.Config
	Validate       *validator.Validate

	templates map[string]*template.Template
}

func NewHandlers(services *service.Service, store *session.Store, cfg *config.Config) (*Handlers, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Handlers{
		AuthService:    services.Auth,
		ThreadService:  services.Thread,
		MessageService: services.Message,
		VoteService:    services.Vote,
		AdminService:   services.Admin,
		HealthService:  services.Health,
		Store:          store,
		Cfg:            cfg,
		Validate:       models.NewValidator(),
		templates:      templates,
	}, nil
}
