package app

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/leafcare/internal/plants"
	"github.com/blackwell-systems/leafcare/internal/store"
)

func TestRunRemove_BacksUpThenRestores(t *testing.T) {
	setupEnv(t)
	crispy, _ := seedGarden(t)
	setFlag(t, &removeFlagYes, true)

	out := captureStdout(t, func() {
		if err := runRemove(removeCmd, []string{"Crispy"}); err != nil {
			t.Fatalf("runRemove() error = %v", err)
		}
	})
	for _, want := range []string{"Care events: 1", "Backup 1 written", "Removed Crispy", "leafcare backup restore 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("remove output missing %q:\n%s", want, out)
		}
	}

	withStore(t, func(st *store.Store) {
		if _, err := st.GetPlant(crispy.ID); !errors.Is(err, store.ErrPlantNotFound) {
			t.Errorf("GetPlant after remove error = %v, want ErrPlantNotFound", err)
		}
	})

	setFlag(t, &backupRestoreYes, true)
	out = captureStdout(t, func() {
		if err := runBackupRestore(backupRestoreCmd, []string{"latest"}); err != nil {
			t.Fatalf("runBackupRestore() error = %v", err)
		}
	})
	if !strings.Contains(out, "1 added, 1 updated, 1 care events") {
		t.Errorf("unexpected restore output:\n%s", out)
	}

	withStore(t, func(st *store.Store) {
		p, err := st.GetPlant(crispy.ID)
		if err != nil {
			t.Fatalf("GetPlant after restore: %v", err)
		}
		if !p.LastWateredAt.Equal(testNow.AddDate(0, 0, -30)) {
			t.Errorf("LastWateredAt = %v, want restored history", p.LastWateredAt)
		}
	})
}

func TestRunRemove_NoBackup(t *testing.T) {
	home := setupEnv(t)
	seedPlant(t, plants.Registration{Nickname: "Fernando", CommonName: "boston fern"})
	setFlag(t, &removeFlagYes, true)
	setFlag(t, &removeFlagNoBackup, true)

	out := captureStdout(t, func() {
		if err := runRemove(removeCmd, []string{"fernando"}); err != nil {
			t.Fatalf("runRemove() error = %v", err)
		}
	})
	if !strings.Contains(out, "SKIPPED") || strings.Contains(out, "backup restore") {
		t.Errorf("unexpected output:\n%s", out)
	}

	entries, _ := os.ReadDir(home + "/backups")
	if len(entries) != 0 {
		t.Errorf("expected no backup files, found %d", len(entries))
	}
}

func TestRunRemove_NotFound(t *testing.T) {
	setupEnv(t)
	seedPlant(t, plants.Registration{Nickname: "Fernando", CommonName: "boston fern"})
	setFlag(t, &removeFlagYes, true)

	err := runRemove(removeCmd, []string{"Ghost"})
	if err == nil || !strings.Contains(err.Error(), "plant not found") {
		t.Errorf("runRemove() error = %v, want plant not found", err)
	}
}

func TestRunBackup_CreateListCleanup(t *testing.T) {
	setupEnv(t)
	seedPlant(t, plants.Registration{Nickname: "Fernando", CommonName: "boston fern"})

	out := captureStdout(t, func() {
		if err := runBackupCreate(backupCreateCmd, []string{"before", "repotting"}); err != nil {
			t.Fatalf("runBackupCreate() error = %v", err)
		}
	})
	if !strings.Contains(out, "Backup 1 written") {
		t.Errorf("unexpected create output:\n%s", out)
	}

	out = captureStdout(t, func() {
		if err := runBackupList(backupListCmd, nil); err != nil {
			t.Fatalf("runBackupList() error = %v", err)
		}
	})
	if !strings.Contains(out, "before repotting") {
		t.Errorf("backup list missing reason:\n%s", out)
	}

	// Age the backup so cleanup removes its file.
	withStore(t, func(st *store.Store) {
		aged := time.Now().AddDate(0, 0, -90).UTC().Format(time.RFC3339)
		if _, err := st.DB().Exec("UPDATE backups SET created_at = ?", aged); err != nil {
			t.Fatal(err)
		}
	})

	out = captureStdout(t, func() {
		if err := runBackupCleanup(backupCleanupCmd, nil); err != nil {
			t.Fatalf("runBackupCleanup() error = %v", err)
		}
	})
	if !strings.Contains(out, "Deleted 1 backup file") {
		t.Errorf("unexpected cleanup output:\n%s", out)
	}
}

func TestRunBackupCleanup_InvalidAge(t *testing.T) {
	setupEnv(t)
	seedPlant(t, plants.Registration{Nickname: "Fernando", CommonName: "boston fern"})
	setFlag(t, &backupCleanupAge, "a while")

	if err := runBackupCleanup(backupCleanupCmd, nil); err == nil {
		t.Error("expected error for invalid --older-than")
	}
}

func TestRunBackupRestore_Errors(t *testing.T) {
	setupEnv(t)
	seedPlant(t, plants.Registration{Nickname: "Fernando", CommonName: "boston fern"})
	setFlag(t, &backupRestoreYes, true)

	tests := []struct {
		arg  string
		want string
	}{
		{"latest", "no backups found"},
		{"abc", "invalid backup ID"},
		{"42", "backup 42 not found"},
	}
	for _, tt := range tests {
		err := runBackupRestore(backupRestoreCmd, []string{tt.arg})
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("restore %s error = %v, want %q", tt.arg, err, tt.want)
		}
	}
}
