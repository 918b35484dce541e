package service

import (
	"context"
	"errors"
	"time"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/dto"
	"portfolio-terminal/internal/pkg/logger"
	"portfolio-terminal/pkg/chat/session"
	"portfolio-terminal/pkg/usage"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAdminService interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	GetUsageStats(ctx context.Context) (*dto.UsageStatsResponse, error)
	GetSystemLogs(ctx context.Context, page, limit int, level, module string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type adminService struct {
	cfg            config.AdminConfig
	logger         logger.ILogger
	usageCollector *usage.Collector
	sessionManager *session.Manager
}

func NewAdminService(
	cfg config.AdminConfig,
	logger logger.ILogger,
	usageCollector *usage.Collector,
	sessionManager *session.Manager,
) IAdminService {
	return &adminService{
		cfg:            cfg,
		logger:         logger,
		usageCollector: usageCollector,
		sessionManager: sessionManager,
	}
}

// Login checks the owner credentials from config and issues a short-lived
// admin token. Failures stay generic on purpose.
func (s *adminService) Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if s.cfg.PasswordHash == "" {
		return nil, errors.New("admin login is not configured")
	}

	if req.Username != s.cfg.Username {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWTExpMins) * time.Minute)
	claims := jwt.MapClaims{
		"username": req.Username,
		"role":     "admin",
		"exp":      expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	s.logger.Info("ADMIN", "Admin login", map[string]interface{}{
		"username": req.Username,
	})

	return &dto.AdminLoginResponse{
		Token:     signedToken,
		ExpiresAt: expiresAt,
	}, nil
}

// GetUsageStats merges the live counters with the session store count.
func (s *adminService) GetUsageStats(ctx context.Context) (*dto.UsageStatsResponse, error) {
	stats := s.usageCollector.Snapshot()

	active, err := s.sessionManager.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.ActiveSessions = active

	return stats, nil
}

// GetSystemLogs reads recent entries back from the zap file sink.
func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level, module string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	logs, err := s.logger.GetLogs(level, module, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	var res []*dto.LogListResponse
	for _, l := range logs {
		ts, _ := time.Parse(time.RFC3339, l.Timestamp)
		res = append(res, &dto.LogListResponse{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		})
	}
	return res, nil
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	l, err := s.logger.GetLogById(logId)
	if err != nil {
		return nil, err
	}

	ts, _ := time.Parse(time.RFC3339, l.Timestamp)

	return &dto.LogDetailResponse{
		LogListResponse: dto.LogListResponse{
			Id:        logId,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		},
		Details: l.Details,
	}, nil
}
