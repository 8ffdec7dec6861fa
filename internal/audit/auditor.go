package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	auditFile        = "contacts_audit.log"
	defaultBatchSize = 10
)

// ContactAuditor appends contact changes to a JSON-lines file. Entries are
// buffered and written once the batch fills up or on Flush/Close.
// A nil *ContactAuditor accepts every call and records nothing.
type ContactAuditor struct {
	logFile   string
	batchSize int
	now       func() time.Time

	mu        sync.Mutex
	batchLogs []AuditLog
}

func NewContactAuditor(logDir string) (*ContactAuditor, error) {
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	return &ContactAuditor{
		logFile:   filepath.Join(logDir, auditFile),
		batchSize: defaultBatchSize,
		now:       time.Now,
		batchLogs: make([]AuditLog, 0, defaultBatchSize),
	}, nil
}

func (a *ContactAuditor) LogContactAction(action AuditAction, contact string, details map[string]string) error {
	return a.append(AuditLog{
		Contact: contact,
		Action:  action,
		Details: details,
	})
}

func (a *ContactAuditor) LogContactChange(contact string, field string, change Change) error {
	if change.OldValue == change.NewValue {
		return nil
	}
	return a.append(AuditLog{
		Contact: contact,
		Action:  AuditActionUpdate,
		Changes: map[string]Change{field: change},
	})
}

func (a *ContactAuditor) append(log AuditLog) error {
	if a == nil {
		return nil
	}

	log.ID = uuid.NewString()
	log.Timestamp = a.now().UTC()

	a.mu.Lock()
	a.batchLogs = append(a.batchLogs, log)
	full := len(a.batchLogs) >= a.batchSize
	a.mu.Unlock()

	if full {
		return a.Flush()
	}
	return nil
}

// Flush writes all pending audit logs to disk
func (a *ContactAuditor) Flush() error {
	if a == nil {
		return nil
	}

	a.mu.Lock()
	if len(a.batchLogs) == 0 {
		a.mu.Unlock()
		return nil
	}
	pending := make([]AuditLog, len(a.batchLogs))
	copy(pending, a.batchLogs)
	a.batchLogs = a.batchLogs[:0]
	a.mu.Unlock()

	file, err := os.OpenFile(a.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, log := range pending {
		line, err := json.Marshal(log)
		if err != nil {
			return fmt.Errorf("failed to marshal audit log: %w", err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
	}
	return w.Flush()
}

// GetContactHistory returns every recorded entry for one contact, oldest first.
func (a *ContactAuditor) GetContactHistory(contact string) ([]AuditLog, error) {
	if a == nil {
		return nil, nil
	}
	if err := a.Flush(); err != nil {
		return nil, err
	}

	file, err := os.Open(a.logFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log file: %w", err)
	}
	defer file.Close()

	var logs []AuditLog
	decoder := json.NewDecoder(file)
	for {
		var log AuditLog
		if err := decoder.Decode(&log); err != nil {
			break
		}
		if log.Contact == contact {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

func (a *ContactAuditor) Close() error {
	return a.Flush()
}
