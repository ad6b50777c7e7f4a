package authService

import (
	"context"

	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/api/auth"
	"ConciergeGolang/pkg/bcrypt"
	"ConciergeGolang/pkg/redis"
	"ConciergeGolang/pkg/utils"
)

type IAuthService interface {
	LoginGuest(ctx context.Context, req auth.GuestLoginRequest) (*auth.LoginResponse, error)
	LoginStaff(ctx context.Context, req auth.StaffLoginRequest) (*auth.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Verify(ctx context.Context, sessionID string) (*auth.VerifyResponse, error)
	ListSessions(ctx context.Context) (*auth.SessionsResponse, error)
}

type authService struct {
	log         *logrus.Logger
	redisServer redis.IRedis
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	redisServer redis.IRedis,
	bcryptUtils bcrypt.IBcrypt,
	u utils.IUtils,
) IAuthService {
	return &authService{
		log:         log,
		redisServer: redisServer,
		bcryptUtils: bcryptUtils,
		utils:       u,
	}
}
