package usecase_test

import (
	"context"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/email"
	"github.com/ErlanBelekov/timesheet/internal/repository"
)

type fakeUserRepo struct {
	findByID             func(ctx context.Context, id string) (*domain.User, error)
	findByEmail          func(ctx context.Context, email string) (*domain.User, error)
	findOrCreateByEmail  func(ctx context.Context, email string) (*domain.User, bool, error)
	findOrCreateByMobile func(ctx context.Context, mobile string) (*domain.User, bool, error)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) FindOrCreateByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	return r.findOrCreateByEmail(ctx, email)
}

func (r *fakeUserRepo) FindOrCreateByMobile(ctx context.Context, mobile string) (*domain.User, bool, error) {
	return r.findOrCreateByMobile(ctx, mobile)
}

type fakeSessionRepo struct {
	create        func(ctx context.Context, s *domain.Session) (*domain.Session, error)
	findByID      func(ctx context.Context, id string) (*domain.Session, error)
	delete        func(ctx context.Context, id string) error
	deleteExpired func(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	return r.create(ctx, s)
}

func (r *fakeSessionRepo) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	return r.findByID(ctx, id)
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *fakeSessionRepo) DeleteExpired(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	return r.deleteExpired(ctx, cutoff, limit)
}

type fakeClientRepo struct {
	list      func(ctx context.Context, userID string) ([]*domain.Client, error)
	getByID   func(ctx context.Context, id int64, userID string) (*domain.Client, error)
	create    func(ctx context.Context, c *domain.Client) (*domain.Client, error)
	update    func(ctx context.Context, c *domain.Client) (*domain.Client, error)
	delete    func(ctx context.Context, id int64, userID string) error
	deleteAll func(ctx context.Context, userID string) (int, error)
}

func (r *fakeClientRepo) List(ctx context.Context, userID string) ([]*domain.Client, error) {
	return r.list(ctx, userID)
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id int64, userID string) (*domain.Client, error) {
	return r.getByID(ctx, id, userID)
}

func (r *fakeClientRepo) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	return r.create(ctx, c)
}

func (r *fakeClientRepo) Update(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	return r.update(ctx, c)
}

func (r *fakeClientRepo) Delete(ctx context.Context, id int64, userID string) error {
	return r.delete(ctx, id, userID)
}

func (r *fakeClientRepo) DeleteAll(ctx context.Context, userID string) (int, error) {
	return r.deleteAll(ctx, userID)
}

type fakeWorkEntryRepo struct {
	list    func(ctx context.Context, input repository.ListWorkEntriesInput) ([]*domain.WorkEntry, error)
	getByID func(ctx context.Context, id int64, userID string) (*domain.WorkEntry, error)
	create  func(ctx context.Context, e *domain.WorkEntry) (*domain.WorkEntry, error)
	update  func(ctx context.Context, e *domain.WorkEntry) (*domain.WorkEntry, error)
	delete  func(ctx context.Context, id int64, userID string) error
}

func (r *fakeWorkEntryRepo) List(ctx context.Context, input repository.ListWorkEntriesInput) ([]*domain.WorkEntry, error) {
	return r.list(ctx, input)
}

func (r *fakeWorkEntryRepo) GetByID(ctx context.Context, id int64, userID string) (*domain.WorkEntry, error) {
	return r.getByID(ctx, id, userID)
}

func (r *fakeWorkEntryRepo) Create(ctx context.Context, e *domain.WorkEntry) (*domain.WorkEntry, error) {
	return r.create(ctx, e)
}

func (r *fakeWorkEntryRepo) Update(ctx context.Context, e *domain.WorkEntry) (*domain.WorkEntry, error) {
	return r.update(ctx, e)
}

func (r *fakeWorkEntryRepo) Delete(ctx context.Context, id int64, userID string) error {
	return r.delete(ctx, id, userID)
}

type fakeEmailSender struct {
	send func(ctx context.Context, msg email.Message) error
}

func (s *fakeEmailSender) Send(ctx context.Context, msg email.Message) error {
	return s.send(ctx, msg)
}
