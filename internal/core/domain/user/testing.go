package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "oroshine/internal/core/domain/common"
	"sync"
)

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetActiveByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by id %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id && u.IsActive() {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(
	ctx context.Context,
	id ID,
	password PasswordHash,
	stamp SecurityStamp,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			r.Users[ix].SecurityStamp = stamp
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeResetRequestRepository struct {
	Created     []RecordResetRequestInput
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetRequestRepository() *FakeResetRequestRepository {
	return &FakeResetRequestRepository{}
}

func (r *FakeResetRequestRepository) Create(ctx context.Context, input RecordResetRequestInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not record reset request for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Created = append(r.Created, input)
	return nil
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeSecurityStampGenerator struct {
	Stamp SecurityStamp
}

func NewFakeSecurityStampGenerator(stamp string) *FakeSecurityStampGenerator {
	return &FakeSecurityStampGenerator{Stamp: SecurityStamp(stamp)}
}

func (g *FakeSecurityStampGenerator) GenerateSecurityStamp() SecurityStamp {
	return g.Stamp
}

type FakePasswordResetter struct {
	Token         PasswordResetToken
	UserID        ID
	DecodeErr     error
	ValidationErr error
}

func NewFakePasswordResetter(token string, userID ID) *FakePasswordResetter {
	return &FakePasswordResetter{
		Token:  PasswordResetToken(token),
		UserID: userID,
	}
}

func (r *FakePasswordResetter) GenerateToken(user User) PasswordResetToken {
	return r.Token
}

func (r *FakePasswordResetter) EncodeReference(id ID) PasswordResetReference {
	return PasswordResetReference(fmt.Sprintf("ref-%d", id))
}

func (r *FakePasswordResetter) DecodeReference(reference PasswordResetReference) (ID, error) {
	if r.DecodeErr != nil {
		return ID(0), r.DecodeErr
	}
	return r.UserID, nil
}

func (r *FakePasswordResetter) ValidateToken(user User, token PasswordResetToken) error {
	return r.ValidationErr
}
