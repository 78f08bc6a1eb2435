package integration

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"log/slog"

	"school-store/internal/domain/dto"
	"school-store/internal/domain/models"
	"school-store/internal/lib/sessions"
	"school-store/internal/repository"
	"school-store/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type memoryStorage struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*models.User
	items        map[uuid.UUID]models.StoreItem
	purchases    []models.Purchase
	transactions []models.PointsTransaction
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		users: make(map[uuid.UUID]*models.User),
		items: make(map[uuid.UUID]models.StoreItem),
	}
}

func (s *memoryStorage) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[uuid.UUID]*models.User)
	s.items = make(map[uuid.UUID]models.StoreItem)
	s.purchases = nil
	s.transactions = nil
}

func (s *memoryStorage) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			return *user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *memoryStorage) GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return *user, nil
}

func (s *memoryStorage) SaveUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return models.User{}, repository.ErrUserAlreadyExists
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	s.users[user.ID] = &user
	return user, nil
}

func (s *memoryStorage) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, *user)
	}
	return out, nil
}

func (s *memoryStorage) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	user.PointsBalance = stored.PointsBalance
	*stored = user
	return user, nil
}

func (s *memoryStorage) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, userID)
	return nil
}

func (s *memoryStorage) ListItems(ctx context.Context, category string, availableOnly bool) ([]models.StoreItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.StoreItem
	for _, item := range s.items {
		if category != "" && item.Category != category {
			continue
		}
		if availableOnly && !item.IsAvailable {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *memoryStorage) GetItemById(ctx context.Context, itemID uuid.UUID) (models.StoreItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return models.StoreItem{}, repository.ErrItemNotFound
	}
	return item, nil
}

func (s *memoryStorage) SaveItem(ctx context.Context, item models.StoreItem) (models.StoreItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	s.items[item.ID] = item
	return item, nil
}

func (s *memoryStorage) UpdateItem(ctx context.Context, item models.StoreItem) (models.StoreItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return models.StoreItem{}, repository.ErrItemNotFound
	}
	s.items[item.ID] = item
	return item, nil
}

func (s *memoryStorage) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return repository.ErrItemNotFound
	}
	delete(s.items, itemID)
	return nil
}

func (s *memoryStorage) ListCategories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var out []string
	for _, item := range s.items {
		if item.Category != "" && !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *memoryStorage) PurchaseItem(ctx context.Context, userID uuid.UUID, item models.StoreItem, size string, quantity, totalCost int) (models.Purchase, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return models.Purchase{}, 0, repository.ErrUserNotFound
	}
	if user.PointsBalance < totalCost {
		return models.Purchase{}, 0, repository.ErrInsufficientPoints
	}

	user.PointsBalance -= totalCost

	purchase := models.Purchase{
		ID:        uuid.New(),
		UserID:    userID,
		ItemID:    item.ID,
		Quantity:  quantity,
		Size:      size,
		TotalCost: totalCost,
		Status:    models.PurchaseCompleted,
		CreatedAt: time.Now(),
	}
	s.purchases = append(s.purchases, purchase)

	s.transactions = append(s.transactions, models.PointsTransaction{
		ID:              uuid.New(),
		UserID:          userID,
		TransactionType: models.TransactionSpent,
		Amount:          totalCost,
		Reason:          "Purchased " + item.Name,
		ReferenceID:     &purchase.ID,
		CreatedAt:       time.Now(),
	})

	return purchase, user.PointsBalance, nil
}

func (s *memoryStorage) ListPurchases(ctx context.Context, userID *uuid.UUID, page, perPage int) ([]models.Purchase, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.Purchase
	for _, purchase := range s.purchases {
		if userID != nil && purchase.UserID != *userID {
			continue
		}
		all = append(all, purchase)
	}

	total := len(all)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return all[start:end], total, nil
}

func (s *memoryStorage) AwardPoints(ctx context.Context, userID, teacherID uuid.UUID, amount int, reason string) (models.PointsTransaction, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return models.PointsTransaction{}, 0, repository.ErrUserNotFound
	}

	user.PointsBalance += amount

	transaction := models.PointsTransaction{
		ID:              uuid.New(),
		UserID:          userID,
		TransactionType: models.TransactionEarned,
		Amount:          amount,
		Reason:          reason,
		CreatedBy:       &teacherID,
		CreatedAt:       time.Now(),
	}
	s.transactions = append(s.transactions, transaction)

	return transaction, user.PointsBalance, nil
}

func (s *memoryStorage) ListTransactions(ctx context.Context, userID *uuid.UUID, page, perPage int) ([]models.PointsTransaction, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.PointsTransaction
	for i := len(s.transactions) - 1; i >= 0; i-- {
		transaction := s.transactions[i]
		if userID != nil && transaction.UserID != *userID {
			continue
		}
		all = append(all, transaction)
	}

	total := len(all)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return all[start:end], total, nil
}

func (s *memoryStorage) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var students []models.User
	for _, user := range s.users {
		if user.Role == models.RoleStudent {
			students = append(students, *user)
		}
	}
	sort.Slice(students, func(i, j int) bool {
		return students[i].PointsBalance > students[j].PointsBalance
	})

	if len(students) > limit {
		students = students[:limit]
	}
	return students, nil
}

func (s *memoryStorage) Close() {}

type memorySessions struct {
	mu    sync.Mutex
	store map[string]string
}

func newMemorySessions() *memorySessions {
	return &memorySessions{store: make(map[string]string)}
}

func (r *memorySessions) StoreSession(ctx context.Context, sessionID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[sessionID] = userID
	return nil
}

func (r *memorySessions) GetSession(ctx context.Context, sessionID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.store[sessionID]
	if !ok {
		return "", repository.ErrSessionNotFound
	}
	return userID, nil
}

func (r *memorySessions) DeleteSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, sessionID)
	return nil
}

type IntegrationTestSuite struct {
	suite.Suite
	ctx           context.Context
	storage       *memoryStorage
	sessionStore  *memorySessions
	gen           *sessions.Generator
	authService   *services.AuthService
	userService   *services.UserService
	storeService  *services.StoreService
	pointsService *services.PointsService
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.storage = newMemoryStorage()
	s.gen = sessions.NewGenerator("secret", time.Hour)
}

func (s *IntegrationTestSuite) SetupTest() {
	s.storage.reset()
	s.sessionStore = newMemorySessions()

	log := slog.Default()
	s.authService = services.NewAuthService(log, s.storage, s.sessionStore, s.gen)
	s.userService = services.NewUserService(log, s.storage)
	s.storeService = services.NewStoreService(log, s.storage)
	s.pointsService = services.NewPointsService(log, s.storage)
}

func (s *IntegrationTestSuite) TestLoginOpensRevocableSession() {
	userID := s.createUser("alice", models.RoleStudent, 500, "password1")

	user, token, err := s.authService.Login(s.ctx, "alice", "password1")
	s.Require().NoError(err)
	s.Equal(userID, user.ID)

	claims, err := s.gen.Parse(token)
	s.Require().NoError(err)
	s.Equal(userID.String(), claims.UserID)

	storedUserID, err := s.sessionStore.GetSession(s.ctx, claims.SessionID)
	s.Require().NoError(err)
	s.Equal(userID.String(), storedUserID)

	err = s.authService.Logout(s.ctx, claims.SessionID)
	s.Require().NoError(err)

	_, err = s.sessionStore.GetSession(s.ctx, claims.SessionID)
	s.ErrorIs(err, repository.ErrSessionNotFound)
}

func (s *IntegrationTestSuite) TestPurchaseDebitsBalanceAndRecordsTransaction() {
	userID := s.createUser("buyer", models.RoleStudent, 600, "password1")
	itemID := s.createItem("Hoodie", "Apparel", []string{"medium", "large"})

	resp, err := s.storeService.Purchase(s.ctx, userID, dto.PurchaseRequest{
		ItemID:   itemID,
		Size:     "large",
		Quantity: 1,
	})
	s.Require().NoError(err)
	s.Equal(100, resp.NewBalance)
	s.Equal(500, resp.Purchase.TotalCost)

	user, err := s.userService.GetUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(100, user.PointsBalance)

	history, err := s.pointsService.ListTransactions(s.ctx, &userID, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(history.Transactions, 1)
	s.Equal("spent", history.Transactions[0].TransactionType)
	s.Equal(500, history.Transactions[0].Amount)
	s.Require().NotNil(history.Transactions[0].ReferenceID)
	s.Equal(resp.Purchase.ID, *history.Transactions[0].ReferenceID)
}

func (s *IntegrationTestSuite) TestPurchaseLeavesBalanceUntouchedWhenPointsRunOut() {
	userID := s.createUser("poor", models.RoleStudent, 100, "password1")
	itemID := s.createItem("Hoodie", "Apparel", []string{"large"})

	_, err := s.storeService.Purchase(s.ctx, userID, dto.PurchaseRequest{
		ItemID:   itemID,
		Size:     "large",
		Quantity: 1,
	})
	s.Require().Error(err)
	s.ErrorIs(err, repository.ErrInsufficientPoints)

	user, err := s.userService.GetUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(100, user.PointsBalance)

	page, err := s.storeService.ListPurchases(s.ctx, &userID, 1, 10)
	s.Require().NoError(err)
	s.Empty(page.Purchases)
}

func (s *IntegrationTestSuite) TestAwardCreditsStudentAndShowsInHistory() {
	teacherID := s.createUser("teacher", models.RoleTeacher, 0, "password1")
	studentID := s.createUser("student", models.RoleStudent, 50, "password1")

	resp, err := s.pointsService.Award(s.ctx, teacherID, dto.AwardRequest{
		UserID: studentID,
		Amount: 75,
		Reason: "Helped in the library",
	})
	s.Require().NoError(err)
	s.Equal(125, resp.NewBalance)

	history, err := s.pointsService.ListTransactions(s.ctx, &studentID, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(history.Transactions, 1)
	s.Equal("earned", history.Transactions[0].TransactionType)
	s.Require().NotNil(history.Transactions[0].CreatedBy)
	s.Equal(teacherID, *history.Transactions[0].CreatedBy)
}

func (s *IntegrationTestSuite) TestAwardToTeacherIsRejected() {
	teacherID := s.createUser("teacher", models.RoleTeacher, 0, "password1")
	otherID := s.createUser("other", models.RoleTeacher, 0, "password1")

	_, err := s.pointsService.Award(s.ctx, teacherID, dto.AwardRequest{
		UserID: otherID,
		Amount: 10,
		Reason: "nope",
	})
	s.Require().Error(err)
	s.ErrorIs(err, services.ErrNotAStudent)
}

func (s *IntegrationTestSuite) TestLeaderboardRanksStudentsByBalance() {
	s.createUser("teacher", models.RoleTeacher, 9999, "password1")
	s.createUser("low", models.RoleStudent, 100, "password1")
	s.createUser("high", models.RoleStudent, 800, "password1")
	s.createUser("mid", models.RoleStudent, 400, "password1")

	board, err := s.pointsService.Leaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(board, 3)
	s.Equal(1, board[0].Rank)
	s.Equal(800, board[0].PointsBalance)
	s.Equal(100, board[2].PointsBalance)
}

func (s *IntegrationTestSuite) createUser(username string, role models.Role, balance int, password string) uuid.UUID {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	s.Require().NoError(err)

	id := uuid.New()
	s.storage.mu.Lock()
	s.storage.users[id] = &models.User{
		ID:            id,
		Username:      username,
		PasswordHash:  hash,
		FirstName:     username,
		LastName:      "Test",
		Role:          role,
		PointsBalance: balance,
	}
	s.storage.mu.Unlock()
	return id
}

func (s *IntegrationTestSuite) createItem(name, category string, availableSizes []string) uuid.UUID {
	id := uuid.New()
	s.storage.mu.Lock()
	s.storage.items[id] = models.StoreItem{
		ID:             id,
		Name:           name,
		Category:       category,
		AvailableSizes: availableSizes,
		IsAvailable:    true,
	}
	s.storage.mu.Unlock()
	return id
}
