/*
Copyright 2022 CodeNotary, Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tabledb

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Backup writes the whole database to path. The file is replaced
// atomically, a crash never leaves a half written backup behind. Values are
// kept as decimal strings, structpb numbers are float64 and would round
// anything above 2^53.
func (db *Database) Backup(path string) error {
	snapshot := &structpb.Struct{Fields: make(map[string]*structpb.Value)}

	db.mu.RLock()
	for name, t := range db.tables {
		snapshot.Fields[name] = structpb.NewStructValue(t.snapshot())
	}
	db.mu.RUnlock()

	b, err := proto.Marshal(snapshot)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	_, err = tmp.Write(b)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing backup '%s': %w", path, err)
	}

	return os.Rename(tmp.Name(), path)
}

// Restore loads a database previously written by Backup
func Restore(path string) (*Database, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	snapshot := &structpb.Struct{}
	if err := proto.Unmarshal(b, snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedBackup, err)
	}

	db := NewDatabase()

	for name, v := range snapshot.Fields {
		fields := v.GetStructValue()
		if fields == nil {
			return nil, fmt.Errorf("%w: table '%s' is not a struct", ErrCorruptedBackup, name)
		}

		t := newTable(name)

		for k, kv := range fields.Fields {
			n, err := strconv.Atoi(kv.GetStringValue())
			if err != nil {
				return nil, fmt.Errorf("%w: key '%s' of table '%s': %v", ErrCorruptedBackup, k, name, err)
			}
			t.data[k] = n
		}

		db.tables[name] = t
	}

	return db, nil
}

func (t *Table) snapshot() *structpb.Struct {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(t.data))}
	for k, v := range t.data {
		s.Fields[k] = structpb.NewStringValue(strconv.Itoa(v))
	}

	return s
}
