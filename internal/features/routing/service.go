package routing

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"nexus-crm/internal/features/lead"
	"nexus-crm/internal/features/notification"
	"nexus-crm/internal/features/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrNoUsersAvailable = errors.New("no users available for assignment")

// AssignmentPolicy selects an owner for a new lead. Swappable so a true
// round robin or load-based strategy can replace the stock one without
// touching callers.
type AssignmentPolicy interface {
	Assign(l *lead.Lead, users []user.User) (user.User, error)
}

// UniformRandomPolicy picks uniformly at random among all users. No role
// filtering happens here, whatever the rule's display text suggests.
type UniformRandomPolicy struct{}

func NewUniformRandomPolicy() AssignmentPolicy {
	return UniformRandomPolicy{}
}

func (UniformRandomPolicy) Assign(l *lead.Lead, users []user.User) (user.User, error) {
	if len(users) == 0 {
		return user.User{}, ErrNoUsersAvailable
	}
	return users[rand.Intn(len(users))], nil
}

// RoutingService assigns owners to newly created leads
type RoutingService interface {
	AssignOwner(ctx context.Context, l *lead.Lead) (primitive.ObjectID, error)
}

// RoutingServiceImpl implements RoutingService
type RoutingServiceImpl struct {
	UserRepo            user.UserRepository
	NotificationService notification.NotificationService
	Policy              AssignmentPolicy
	Rule                RoutingRule
	Logger              *zap.Logger
}

// NewRoutingService creates a new routing service
func NewRoutingService(
	userRepo user.UserRepository,
	notificationService notification.NotificationService,
	policy AssignmentPolicy,
	logger *zap.Logger,
) RoutingService {
	return &RoutingServiceImpl{
		UserRepo:            userRepo,
		NotificationService: notificationService,
		Policy:              policy,
		Rule:                DefaultRule(),
		Logger:              logger,
	}
}

// AssignOwner applies the assignment policy and announces the routing on
// the notification feed. An empty user set is an explicit error; the lead
// must not be silently left unowned.
func (s *RoutingServiceImpl) AssignOwner(ctx context.Context, l *lead.Lead) (primitive.ObjectID, error) {
	users, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	owner, err := s.Policy.Assign(l, users)
	if err != nil {
		return primitive.NilObjectID, err
	}

	s.Logger.Info("lead routed",
		zap.String("rule", s.Rule.Name),
		zap.String("owner", owner.Name))

	if err := s.NotificationService.CreateNotification(ctx,
		"New Lead Routed",
		fmt.Sprintf("%s assigned %s to %s.", s.Rule.Name, l.FullName(), owner.Name),
		notification.NotificationTypeSystem); err != nil {
		return primitive.NilObjectID, err
	}

	return owner.ID, nil
}
