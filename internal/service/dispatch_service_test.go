package service

import (
	"context"
	"testing"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
	"github.com/pekay23/raymond-gray-platform/internal/events"
	apperrors "github.com/pekay23/raymond-gray-platform/pkg/util"
)

func assertErrorCode(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code != want {
		t.Fatalf("expected error code %s, got %s (%v)", want, domainErr.Code, err)
	}
}

func isFourDigitCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return code[0] != '0'
}

func newDispatchFixture() (*DispatchService, *fakeInquiryRepo, *fakeUserRepo) {
	inquiries := newFakeInquiryRepo()
	users := newFakeUserRepo()
	svc := NewDispatchService(DispatchDependencies{
		InquiryRepo: inquiries,
		UserRepo:    users,
		Dispatcher:  events.NewInMemoryDispatcher(),
	})
	return svc, inquiries, users
}

func TestAssignHappyPath(t *testing.T) {
	svc, inquiries, users := newDispatchFixture()
	admin := users.seed(domain.User{Role: domain.UserRoleAdmin, Status: domain.UserStatusActive})
	tech := users.seed(domain.User{Role: domain.UserRoleTechnician, Status: domain.UserStatusActive})
	inquiry := inquiries.seed(domain.Inquiry{Status: domain.InquiryStatusPending})

	updated, err := svc.Assign(context.Background(), admin, inquiry.ID, tech.ID)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if updated.Status != domain.InquiryStatusAssigned {
		t.Fatalf("expected status ASSIGNED, got %s", updated.Status)
	}
	if updated.TechnicianID == nil || *updated.TechnicianID != tech.ID {
		t.Fatalf("technician binding not recorded")
	}
	if updated.StartCode == nil || !isFourDigitCode(*updated.StartCode) {
		t.Fatalf("start code not a 4-digit code: %v", updated.StartCode)
	}
	if updated.EndCode == nil || !isFourDigitCode(*updated.EndCode) {
		t.Fatalf("completion code not a 4-digit code: %v", updated.EndCode)
	}
	if *updated.StartCode == *updated.EndCode {
		t.Fatalf("start and completion codes must differ")
	}
}

func TestAssignRequiresAdmin(t *testing.T) {
	svc, inquiries, users := newDispatchFixture()
	tech := users.seed(domain.User{Role: domain.UserRoleTechnician, Status: domain.UserStatusActive})
	inquiry := inquiries.seed(domain.Inquiry{Status: domain.InquiryStatusPending})

	_, err := svc.Assign(context.Background(), nil, inquiry.ID, tech.ID)
	assertErrorCode(t, err, "UNAUTHORIZED")

	client := users.seed(domain.User{Role: domain.UserRoleClient, Status: domain.UserStatusActive})
	_, err = svc.Assign(context.Background(), client, inquiry.ID, tech.ID)
	assertErrorCode(t, err, "FORBIDDEN")

	current, _ := inquiries.GetByID(context.Background(), inquiry.ID)
	if current.Status != domain.InquiryStatusPending {
		t.Fatalf("rejected assign must not mutate the inquiry")
	}
}

func TestAssignUnknownTechnician(t *testing.T) {
	svc, inquiries, users := newDispatchFixture()
	admin := users.seed(domain.User{Role: domain.UserRoleAdmin, Status: domain.UserStatusActive})
	inquiry := inquiries.seed(domain.Inquiry{Status: domain.InquiryStatusPending})

	_, err := svc.Assign(context.Background(), admin, inquiry.ID, "no-such-user")
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestAssignRejectsNonTechnicianTarget(t *testing.T) {
	svc, inquiries, users := newDispatchFixture()
	admin := users.seed(domain.User{Role: domain.UserRoleAdmin, Status: domain.UserStatusActive})
	client := users.seed(domain.User{Role: domain.UserRoleClient, Status: domain.UserStatusActive})
	inquiry := inquiries.seed(domain.Inquiry{Status: domain.InquiryStatusPending})

	_, err := svc.Assign(context.Background(), admin, inquiry.ID, client.ID)
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestAssignRejectsSuspendedTechnician(t *testing.T) {
	svc, inquiries, users := newDispatchFixture()
	admin := users.seed(domain.User{Role: domain.UserRoleAdmin, Status: domain.UserStatusActive})
	tech := users.seed(domain.User{Role: domain.UserRoleTechnician, Status: domain.UserStatusSuspended})
	inquiry := inquiries.seed(domain.Inquiry{Status: domain.InquiryStatusPending})

	_, err := svc.Assign(context.Background(), admin, inquiry.ID, tech.ID)
	assertErrorCode(t, err, "CONFLICT")
}

func TestAssignMissingInquiry(t *testing.T) {
	svc, _, users := newDispatchFixture()
	admin := users.seed(domain.User{Role: domain.UserRoleAdmin, Status: domain.UserStatusActive})
	tech := users.seed(domain.User{Role: domain.UserRoleTechnician, Status: domain.UserStatusActive})

	_, err := svc.Assign(context.Background(), admin, 404, tech.ID)
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestAssignAlreadyDispatched(t *testing.T) {
	svc, inquiries, users := newDispatchFixture()
	admin := users.seed(domain.User{Role: domain.UserRoleAdmin, Status: domain.UserStatusActive})
	tech := users.seed(domain.User{Role: domain.UserRoleTechnician, Status: domain.UserStatusActive})
	other := users.seed(domain.User{Role: domain.UserRoleTechnician, Status: domain.UserStatusActive})
	inquiry := inquiries.seed(domain.Inquiry{Status: domain.InquiryStatusPending})

	if _, err := svc.Assign(context.Background(), admin, inquiry.ID, tech.ID); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}

	_, err := svc.Assign(context.Background(), admin, inquiry.ID, other.ID)
	assertErrorCode(t, err, "CONFLICT")

	current, _ := inquiries.GetByID(context.Background(), inquiry.ID)
	if current.TechnicianID == nil || *current.TechnicianID != tech.ID {
		t.Fatalf("losing assign must not overwrite the bound technician")
	}
}

func TestAssignPublishesJobAssigned(t *testing.T) {
	inquiries := newFakeInquiryRepo()
	users := newFakeUserRepo()
	dispatcher := events.NewInMemoryDispatcher()

	var seen []events.Event
	dispatcher.Subscribe(events.EventJobAssigned, func(_ context.Context, event events.Event) error {
		seen = append(seen, event)
		return nil
	})

	svc := NewDispatchService(DispatchDependencies{
		InquiryRepo: inquiries,
		UserRepo:    users,
		Dispatcher:  dispatcher,
	})
	admin := users.seed(domain.User{Role: domain.UserRoleAdmin, Status: domain.UserStatusActive})
	tech := users.seed(domain.User{Role: domain.UserRoleTechnician, Status: domain.UserStatusActive})
	inquiry := inquiries.seed(domain.Inquiry{Status: domain.InquiryStatusPending})

	if _, err := svc.Assign(context.Background(), admin, inquiry.ID, tech.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("expected one job_assigned event, got %d", len(seen))
	}
	payload, ok := seen[0].Payload.(events.JobAssignedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", seen[0].Payload)
	}
	if payload.TechnicianID != tech.ID {
		t.Fatalf("event carries wrong technician: %s", payload.TechnicianID)
	}
}
