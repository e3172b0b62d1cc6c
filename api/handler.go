package api

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/config"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/kpis"
)

type Handler struct {
	kpis   kpis.Service
	config *config.Config
	logger *zap.SugaredLogger
	now    func() time.Time
}

type Params struct {
	fx.In

	Kpis   kpis.Service
	Config *config.Config
	Logger *zap.SugaredLogger
}

func NewHandler(p Params) *Handler {
	return &Handler{
		kpis:   p.Kpis,
		config: p.Config,
		logger: p.Logger,
		now:    time.Now,
	}
}
