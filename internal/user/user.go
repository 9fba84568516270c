package user

import "github.com/ferdiebergado/accountkit/internal/platform/db"

// Module wires the user repository, service and handler over one executor.
type Module struct {
	repo    *Repository
	svc     Service
	handler *Handler
}

func (m *Module) Repository() *Repository {
	return m.repo
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func NewModule(exec db.Executor) *Module {
	repo := NewRepository(exec)
	svc := NewService(repo)
	return &Module{
		repo:    repo,
		svc:     svc,
		handler: NewHandler(svc),
	}
}
