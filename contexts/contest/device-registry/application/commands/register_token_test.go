package commands

import (
	"context"
	"errors"
	"testing"

	"giggles/contexts/contest/device-registry/adapters/memory"
	"giggles/contexts/contest/device-registry/domain/entities"
	domainerrors "giggles/contexts/contest/device-registry/domain/errors"
)

func TestRegisterTokenUpsertsByDeviceID(t *testing.T) {
	store := memory.NewStore(nil)
	uc := RegisterTokenUseCase{Repository: store, Clock: store, IDGen: store}

	first, err := uc.Execute(context.Background(), RegisterTokenCommand{DeviceID: "abc", Token: "t1", Platform: entities.PlatformIOS})
	if err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	second, err := uc.Execute(context.Background(), RegisterTokenCommand{DeviceID: "abc", Token: "t2", Platform: entities.PlatformAndroid})
	if err != nil {
		t.Fatalf("second registration failed: %v", err)
	}
	if first.DeviceRecordID != second.DeviceRecordID {
		t.Fatalf("expected record id to be kept, got %s then %s", first.DeviceRecordID, second.DeviceRecordID)
	}
	found, err := store.FindByDeviceID(context.Background(), "abc")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Token != "t2" || found.Platform != entities.PlatformAndroid {
		t.Fatalf("expected latest token, got %+v", found)
	}
}

func TestRegisterTokenWithoutDeviceIDCreatesNewRecords(t *testing.T) {
	store := memory.NewStore(nil)
	uc := RegisterTokenUseCase{Repository: store, Clock: store, IDGen: store}

	a, err := uc.Execute(context.Background(), RegisterTokenCommand{Token: "t1", Platform: entities.PlatformIOS})
	if err != nil {
		t.Fatal(err)
	}
	b, err := uc.Execute(context.Background(), RegisterTokenCommand{Token: "t1", Platform: entities.PlatformIOS})
	if err != nil {
		t.Fatal(err)
	}
	if a.DeviceRecordID == b.DeviceRecordID {
		t.Fatal("anonymous registrations should not be merged")
	}
}

func TestRegisterTokenValidation(t *testing.T) {
	store := memory.NewStore(nil)
	uc := RegisterTokenUseCase{Repository: store, Clock: store, IDGen: store}

	if _, err := uc.Execute(context.Background(), RegisterTokenCommand{DeviceID: "abc", Platform: entities.PlatformIOS}); !errors.Is(err, domainerrors.ErrTokenRequired) {
		t.Fatalf("expected token required, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), RegisterTokenCommand{Token: "t", Platform: "Windows"}); !errors.Is(err, domainerrors.ErrInvalidDeviceInput) {
		t.Fatalf("expected invalid platform, got %v", err)
	}
}
