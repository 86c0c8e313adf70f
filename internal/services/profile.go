package services

import (
	"errors"
	"time"

	"github.com/velora-live/velora/internal/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// defaultProfile is the profile row created alongside a new user.
func defaultProfile(userID uint) *models.Profile {
	return &models.Profile{
		UserID:      userID,
		Level:       1,
		ChargeLevel: datatypes.JSON([]byte(`{"level":1,"stars":0}`)),
		Info:        datatypes.JSON([]byte(`{"about":"","album":[],"interests":[]}`)),
		Gifts:       datatypes.JSON([]byte(`{"total_gifts":0,"top_gifts":[]}`)),
		Badges:      datatypes.JSON([]byte(`{"total_badges":0,"top_badges":[]}`)),
	}
}

type UpdateProfileInput struct {
	Country     *string
	Gender      *string
	Age         *int
	GroupName   *string
	CurrentRoom *string
	ChargeLevel datatypes.JSON
	Info        datatypes.JSON
	Gifts       datatypes.JSON
	Badges      datatypes.JSON
}

// PublicProfile is the reduced view served for other users.
type PublicProfile struct {
	PublicID string `json:"userId"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Level    int    `json:"level"`
	Credits  int64  `json:"credits"`
	Charisma int64  `json:"charisma"`
	Country  string `json:"country"`
}

// LevelInfo combines a user's current level with the thresholds of the next
// one.
type LevelInfo struct {
	Level             int   `json:"level"`
	FamePoints        int64 `json:"famePoints"`
	RichPoints        int64 `json:"richPoints"`
	NextFameThreshold int64 `json:"nextFameThreshold"`
	NextRichThreshold int64 `json:"nextRichThreshold"`
}

// AgencyCredit is the member-side view of credit flow inside an agency.
type AgencyCredit struct {
	AgencyName  string                 `json:"agencyName"`
	Credit      int64                  `json:"credit"`
	DayTarget   int64                  `json:"dayTarget"`
	MonthTarget int64                  `json:"monthTarget"`
	History     []models.AgencyHistory `json:"history"`
}

type ProfileService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProfileService(conn *gorm.DB, logger *zap.Logger) *ProfileService {
	return &ProfileService{db: conn, logger: logger}
}

// GetMain returns the authenticated user's own profile together with the
// account it belongs to.
func (s *ProfileService) GetMain(userID uint) (*models.Profile, *models.User, error) {
	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProfileNotFound
		}
		return nil, nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	return &profile, &user, nil
}

func (s *ProfileService) UpdateMain(userID uint, in UpdateProfileInput) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Country != nil {
		updates["country"] = *in.Country
	}
	if in.Gender != nil {
		updates["gender"] = *in.Gender
	}
	if in.Age != nil {
		updates["age"] = *in.Age
	}
	if in.GroupName != nil {
		updates["group_name"] = *in.GroupName
	}
	if in.CurrentRoom != nil {
		updates["current_room"] = *in.CurrentRoom
	}
	if in.ChargeLevel != nil {
		updates["charge_level"] = in.ChargeLevel
	}
	if in.Info != nil {
		updates["info"] = in.Info
	}
	if in.Gifts != nil {
		updates["gifts"] = in.Gifts
	}
	if in.Badges != nil {
		updates["badges"] = in.Badges
	}

	if len(updates) > 0 {
		if err := s.db.Model(&profile).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &profile, nil
}

// GetPublic returns the reduced profile view by public ID.
func (s *ProfileService) GetPublic(publicID string) (*PublicProfile, error) {
	user, profile, err := s.byPublicID(publicID)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		PublicID: user.PublicID,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Level:    user.Level,
		Credits:  user.Credits,
		Charisma: profile.Charisma,
		Country:  profile.Country,
	}, nil
}

func (s *ProfileService) VipLevel(publicID string) (int, error) {
	_, profile, err := s.byPublicID(publicID)
	if err != nil {
		return 0, err
	}
	return profile.VipLevel, nil
}

func (s *ProfileService) ProExpiration(publicID string) (*time.Time, error) {
	_, profile, err := s.byPublicID(publicID)
	if err != nil {
		return nil, err
	}
	return profile.ProExpiresAt, nil
}

// StoreSections returns every store section with its items. The store is
// global, not per user.
func (s *ProfileService) StoreSections() ([]models.StoreSection, error) {
	var sections []models.StoreSection
	err := s.db.Preload("Items").Find(&sections).Error
	return sections, err
}

// UserLevel reports the user's level and the next level's thresholds.
func (s *ProfileService) UserLevel(publicID string) (*LevelInfo, error) {
	user, _, err := s.byPublicID(publicID)
	if err != nil {
		return nil, err
	}

	info := LevelInfo{
		Level:      user.Level,
		FamePoints: user.FamePoints,
		RichPoints: user.RichPoints,
	}

	var next models.LevelThreshold
	err = s.db.Where("level = ?", user.Level+1).First(&next).Error
	if err == nil {
		info.NextFameThreshold = next.FameThreshold
		info.NextRichThreshold = next.RichThreshold
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &info, nil
}

func (s *ProfileService) CreditsHistory(publicID string) ([]models.CreditsHistory, error) {
	user, _, err := s.byPublicID(publicID)
	if err != nil {
		return nil, err
	}

	var history []models.CreditsHistory
	err = s.db.Preload("Item").
		Where("user_id = ?", user.ID).
		Order("date DESC").
		Find(&history).Error
	return history, err
}

// CreditsAgency returns the user's credit standing inside their host agency.
func (s *ProfileService) CreditsAgency(publicID string) (*AgencyCredit, error) {
	user, _, err := s.byPublicID(publicID)
	if err != nil {
		return nil, err
	}
	if user.HostAgencyID == nil {
		return nil, ErrUserNotFound
	}

	var agency models.Agency
	if err := s.db.First(&agency, *user.HostAgencyID).Error; err != nil {
		return nil, err
	}

	var member models.AgencyMember
	err = s.db.Where("agency_id = ? AND user_id = ?", agency.ID, user.ID).First(&member).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var history []models.AgencyHistory
	err = s.db.Where("agency_id = ? AND user_id = ?", agency.ID, user.ID).
		Order("date DESC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}

	return &AgencyCredit{
		AgencyName:  agency.Name,
		Credit:      member.Credit,
		DayTarget:   member.DayTarget,
		MonthTarget: member.MonthTarget,
		History:     history,
	}, nil
}

// HostAgencyData returns the full agency the user hosts under, with admin
// and roster preloaded.
func (s *ProfileService) HostAgencyData(publicID string) (*models.Agency, error) {
	user, _, err := s.byPublicID(publicID)
	if err != nil {
		return nil, err
	}
	if user.HostAgencyID == nil {
		return nil, ErrUserNotFound
	}

	var agency models.Agency
	err = s.db.Preload("Admin").Preload("Members").First(&agency, *user.HostAgencyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &agency, nil
}

// JoinRequests lists users with pending invitations to groups the user
// administers.
func (s *ProfileService) JoinRequests(publicID string) ([]models.User, error) {
	user, _, err := s.byPublicID(publicID)
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = s.db.
		Joins("JOIN group_invitations ON group_invitations.user_id = users.id").
		Joins("JOIN groups ON groups.id = group_invitations.group_id").
		Where("groups.admin_id = ? AND group_invitations.status = ?", user.ID, models.InvitationPending).
		Find(&users).Error
	return users, err
}

func (s *ProfileService) byPublicID(publicID string) (*models.User, *models.Profile, error) {
	var user models.User
	err := s.db.Where("public_id = ?", publicID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	var profile models.Profile
	err = s.db.Where("user_id = ?", user.ID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProfileNotFound
		}
		return nil, nil, err
	}

	return &user, &profile, nil
}
