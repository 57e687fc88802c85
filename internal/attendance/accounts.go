package attendance

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 20
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores everything after 72 bytes

	sessionTokenBytes = 128
)

var errInvalidCredentials = fmt.Errorf("%w: Invalid username or password", ErrUnauthorized)

func validateCredentials(username, password string) error {
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return validationErr("Username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	}
	if n := len(password); n < minPasswordLength || n > maxPasswordLength {
		return validationErr("Password must be between %d and %d characters", minPasswordLength, maxPasswordLength)
	}
	return nil
}

// Register creates a student account, the username has to be the student number of an existing student
func (s *Service) Register(ctx context.Context, username, password string) (models.Account, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return models.Account{}, err
	}

	studentNumber, err := strconv.ParseUint(username, 10, 0)
	if err != nil {
		return models.Account{}, notFoundErr("No valid student number")
	}
	student, err := gorm.G[models.Student](s.db).Where("student_number = ?", studentNumber).First(ctx)
	if isNotFound(err) {
		return models.Account{}, notFoundErr("No valid student number")
	} else if err != nil {
		return models.Account{}, err
	}

	// "01000001" and "1000001" are the same student, the account always gets the canonical number
	account := models.Account{
		Username:      strconv.FormatUint(uint64(student.StudentNumber), 10),
		Role:          models.RoleStudent,
		StudentNumber: &student.StudentNumber,
	}
	return account, s.createAccount(ctx, &account, password)
}

// CreateTeacherAccount creates the login of a teacher, teachers log in with their teacher id
func (s *Service) CreateTeacherAccount(ctx context.Context, teacherID uint, password string) (models.Account, error) {
	username := strconv.FormatUint(uint64(teacherID), 10)
	if err := validateCredentials(username, password); err != nil {
		return models.Account{}, err
	}

	teacher, err := gorm.G[models.Teacher](s.db).Where("teacher_id = ?", teacherID).First(ctx)
	if isNotFound(err) {
		return models.Account{}, notFoundErr("Teacher %d not found", teacherID)
	} else if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		Username:  username,
		Role:      models.RoleTeacher,
		TeacherID: &teacher.TeacherID,
	}
	return account, s.createAccount(ctx, &account, password)
}

func (s *Service) createAccount(ctx context.Context, account *models.Account, password string) error {
	taken, err := gorm.G[models.Account](s.db).Where("username = ?", account.Username).Count(ctx, "id")
	if err != nil {
		return err
	}
	if taken > 0 {
		return conflictErr("Username already taken")
	}

	if account.StudentNumber != nil {
		taken, err = gorm.G[models.Account](s.db).Where("student_number = ?", *account.StudentNumber).Count(ctx, "id")
		if err != nil {
			return err
		}
		if taken > 0 {
			return conflictErr("Student %d already has an account", *account.StudentNumber)
		}
	}
	if account.TeacherID != nil {
		taken, err = gorm.G[models.Account](s.db).Where("teacher_id = ?", *account.TeacherID).Count(ctx, "id")
		if err != nil {
			return err
		}
		if taken > 0 {
			return conflictErr("Teacher %d already has an account", *account.TeacherID)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}
	account.PasswordHash = string(hash)

	err = gorm.G[models.Account](s.db).Create(ctx, account)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflictErr("Account already exists")
	}
	return err
}

// Authenticate checks a username/password pair. Unknown users and wrong passwords give the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (models.Account, error) {
	account, err := gorm.G[models.Account](s.db).Where("username = ?", strings.TrimSpace(username)).First(ctx)
	if isNotFound(err) {
		return models.Account{}, errInvalidCredentials
	} else if err != nil {
		return models.Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return models.Account{}, errInvalidCredentials
	}
	return account, nil
}

func generateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// StartSession creates a new login session for account
func (s *Service) StartSession(ctx context.Context, account models.Account) (models.AuthSession, error) {
	token, err := generateSecureToken(sessionTokenBytes)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("could not create session token: %w", err)
	}

	session := models.AuthSession{
		SessionToken: token,
		AccountID:    account.ID,
		ExpiresAt:    s.now().Add(s.cfg.Auth.SessionDuration),
	}
	if err := gorm.G[models.AuthSession](s.db).Create(ctx, &session); err != nil {
		return models.AuthSession{}, err
	}
	session.Account = account
	return session, nil
}

// ResolveSession returns the session for token with its account loaded
func (s *Service) ResolveSession(ctx context.Context, token string) (models.AuthSession, error) {
	var session models.AuthSession
	err := s.db.WithContext(ctx).Preload("Account").Where("session_token = ?", token).First(&session).Error
	if isNotFound(err) {
		return models.AuthSession{}, fmt.Errorf("%w: Invalid session", ErrUnauthorized)
	} else if err != nil {
		return models.AuthSession{}, err
	}

	if s.now().After(session.ExpiresAt) {
		return models.AuthSession{}, fmt.Errorf("%w: Session expired", ErrUnauthorized)
	}
	if session.Account.ID == 0 {
		// account was removed after the session was created
		return models.AuthSession{}, fmt.Errorf("%w: Invalid session", ErrUnauthorized)
	}
	return session, nil
}

// EndSession logs out, ending an unknown session is not an error
func (s *Service) EndSession(ctx context.Context, token string) error {
	_, err := gorm.G[models.AuthSession](s.db).Where("session_token = ?", token).Delete(ctx)
	return err
}

// CleanExpiredSessions removes every session past its expiry and returns how many were removed
func (s *Service) CleanExpiredSessions(ctx context.Context) (int, error) {
	return gorm.G[models.AuthSession](s.db).Where("expires_at < ?", s.now()).Delete(ctx)
}
