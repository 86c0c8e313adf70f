package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/velora-live/velora/internal/idgen"
	"github.com/velora-live/velora/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// publicIDAttempts bounds how many generated IDs are checked against the
// store before giving up.
const publicIDAttempts = 5

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Avatar   string
	Frame    string
	Role     string
}

type ListUsersOptions struct {
	Name   string
	Role   string
	SortBy string // "field:asc" or "field:desc"
	Limit  int
	Page   int
}

type UserPage struct {
	Results      []models.User `json:"results"`
	Page         int           `json:"page"`
	Limit        int           `json:"limit"`
	TotalPages   int           `json:"totalPages"`
	TotalResults int64         `json:"totalResults"`
}

type SearchPage struct {
	Users        []models.User `json:"users"`
	TotalResults int64         `json:"totalResults"`
	CurrentPage  int           `json:"currentPage"`
	TotalPages   int           `json:"totalPages"`
}

type UserService struct {
	db     *gorm.DB
	logger *zap.Logger
	idgen  *idgen.Generator
}

func NewUserService(conn *gorm.DB, logger *zap.Logger) *UserService {
	return &UserService{db: conn, logger: logger, idgen: idgen.New()}
}

// Register creates a user and their profile in one transaction. The public
// ID is generated locally, checked against the store, and retried on
// conflict a bounded number of times.
func (s *UserService) Register(in CreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = "user"
	}

	for attempt := 0; attempt < publicIDAttempts; attempt++ {
		publicID, err := s.idgen.Next()
		if err != nil {
			return nil, ErrIDSpaceExhausted
		}

		var taken int64
		if err := s.db.Model(&models.User{}).Where("public_id = ?", publicID).Count(&taken).Error; err != nil {
			return nil, err
		}
		if taken > 0 {
			continue
		}

		user := models.User{
			Name:         strings.TrimSpace(in.Name),
			Email:        email,
			PasswordHash: string(passwordHash),
			PublicID:     publicID,
			Role:         role,
			Level:        1,
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return tx.Create(defaultProfile(user.ID)).Error
		})
		if err == nil {
			return &user, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Either index can fire here. A concurrent signup with the same
			// email is a conflict, not an ID collision, so recheck before
			// drawing again.
			if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrEmailTaken
			}
			s.logger.Warn("public id conflict, retrying", zap.String("public_id", publicID))
			continue
		}
		return nil, err
	}

	return nil, ErrIDSpaceExhausted
}

// Authenticate verifies the email/password pair and returns the user.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("HostAgency").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByPublicID(publicID string) (*models.User, error) {
	var user models.User
	err := s.db.Where("public_id = ?", publicID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// sortable whitelists the fields List accepts in its sortBy option.
var sortable = map[string]string{
	"name":       "name",
	"level":      "level",
	"credits":    "credits",
	"created_at": "created_at",
	"createdAt":  "created_at",
}

func (s *UserService) List(opts ListUsersOptions) (*UserPage, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	q := s.db.Model(&models.User{})
	if opts.Name != "" {
		q = q.Where("name = ?", opts.Name)
	}
	if opts.Role != "" {
		q = q.Where("role = ?", opts.Role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	if opts.SortBy != "" {
		field, dir, _ := strings.Cut(opts.SortBy, ":")
		if column, ok := sortable[field]; ok {
			order := column
			if dir == "desc" {
				order += " DESC"
			}
			q = q.Order(order)
		}
	}

	var users []models.User
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&users).Error; err != nil {
		return nil, err
	}

	return &UserPage{
		Results:      users,
		Page:         page,
		Limit:        limit,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
		TotalResults: total,
	}, nil
}

func (s *UserService) Update(id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if in.Name != "" {
		updates["name"] = strings.TrimSpace(in.Name)
	}
	if in.Email != "" {
		email := strings.ToLower(strings.TrimSpace(in.Email))
		if email != user.Email {
			var count int64
			err := s.db.Model(&models.User{}).Where("email = ? AND id != ?", email, id).Count(&count).Error
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrEmailTaken
			}
		}
		updates["email"] = email
	}
	if in.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(passwordHash)
	}
	if in.Avatar != "" {
		updates["avatar"] = in.Avatar
	}
	if in.Frame != "" {
		updates["frame"] = in.Frame
	}
	if in.Role != "" {
		updates["role"] = in.Role
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetByID(id)
}

// Delete removes the user together with their profile, relation edges,
// credit history and point events so no dangling references remain.
func (s *UserService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? OR target_id = ?", id, id).Delete(&models.Relation{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&models.CreditsHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&models.PointEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, id).Error
	})
}

// addEdge inserts a relation edge if it does not exist yet. The composite
// unique index makes repeats a no-op.
func (s *UserService) addEdge(actorID uint, targetPublicID, kind string) error {
	target, err := s.GetByPublicID(targetPublicID)
	if err != nil {
		return err
	}

	rel := models.Relation{UserID: actorID, TargetID: target.ID, Kind: kind}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rel).Error
}

// removeEdge deletes a relation edge. Removing an absent edge is a no-op.
func (s *UserService) removeEdge(actorID uint, targetPublicID, kind string) error {
	target, err := s.GetByPublicID(targetPublicID)
	if err != nil {
		return err
	}

	return s.db.
		Where("user_id = ? AND target_id = ? AND kind = ?", actorID, target.ID, kind).
		Delete(&models.Relation{}).Error
}

func (s *UserService) Follow(actorID uint, targetPublicID string) error {
	return s.addEdge(actorID, targetPublicID, models.RelationFollow)
}

func (s *UserService) Unfollow(actorID uint, targetPublicID string) error {
	return s.removeEdge(actorID, targetPublicID, models.RelationFollow)
}

func (s *UserService) Block(actorID uint, targetPublicID string) error {
	return s.addEdge(actorID, targetPublicID, models.RelationBlock)
}

func (s *UserService) Unblock(actorID uint, targetPublicID string) error {
	return s.removeEdge(actorID, targetPublicID, models.RelationBlock)
}

// AddFriend records a one-sided friend edge for the acting user.
func (s *UserService) AddFriend(actorID uint, targetPublicID string) error {
	return s.addEdge(actorID, targetPublicID, models.RelationFriend)
}

// outgoing returns the users the edge points at (following, friends,
// blocked).
func (s *UserService) outgoing(publicID, kind string) ([]models.User, error) {
	user, err := s.GetByPublicID(publicID)
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = s.db.
		Joins("JOIN relations ON relations.target_id = users.id").
		Where("relations.user_id = ? AND relations.kind = ?", user.ID, kind).
		Find(&users).Error
	return users, err
}

func (s *UserService) Following(publicID string) ([]models.User, error) {
	return s.outgoing(publicID, models.RelationFollow)
}

func (s *UserService) Friends(publicID string) ([]models.User, error) {
	return s.outgoing(publicID, models.RelationFriend)
}

func (s *UserService) Blocked(publicID string) ([]models.User, error) {
	return s.outgoing(publicID, models.RelationBlock)
}

func (s *UserService) Followers(publicID string) ([]models.User, error) {
	user, err := s.GetByPublicID(publicID)
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = s.db.
		Joins("JOIN relations ON relations.user_id = users.id").
		Where("relations.target_id = ? AND relations.kind = ?", user.ID, models.RelationFollow).
		Find(&users).Error
	return users, err
}

// ManageCredits applies a balance change and appends the matching history
// row in one transaction. Deductions and purchases are guarded so the
// balance can never go negative.
func (s *UserService) ManageCredits(userID uint, kind string, amount int64, itemID *uint) (*models.User, error) {
	var user models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		switch kind {
		case models.CreditsAdd:
			err := tx.Model(&models.User{}).Where("id = ?", userID).
				UpdateColumn("credits", gorm.Expr("credits + ?", amount)).Error
			if err != nil {
				return err
			}
		case models.CreditsDeduct, models.CreditsPurchase:
			res := tx.Model(&models.User{}).Where("id = ? AND credits >= ?", userID, amount).
				UpdateColumn("credits", gorm.Expr("credits - ?", amount))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientCredits
			}
		default:
			return ErrInvalidCreditsKind
		}

		history := models.CreditsHistory{
			UserID: userID,
			Amount: amount,
			Type:   kind,
			ItemID: itemID,
			Date:   time.Now(),
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		return tx.First(&user, userID).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Search matches a case-insensitive name substring or an exact public ID.
func (s *UserService) Search(query string, page, limit int) (*SearchPage, error) {
	if query == "" {
		return nil, ErrSearchQueryRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}

	match := s.db.Where("name ILIKE ?", "%"+query+"%").Or("public_id = ?", query)

	var total int64
	if err := s.db.Model(&models.User{}).Where(match).Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	err := s.db.Where(match).Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	if err != nil {
		return nil, err
	}

	return &SearchPage{
		Users:        users,
		TotalResults: total,
		CurrentPage:  page,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
