// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"io"

	"github.com/coredeposit/corewallet/snacl"
	"github.com/coredeposit/corewallet/txcache"
)

// fileMagic and fileVersion are the persisted file format's header,
// exactly as spec.md §4.5/§6 specifies: magic(4) || version(4) ||
// encrypted_body.
const (
	fileMagic   uint32 = 0x434e4c57 // "CNLW"
	fileVersion uint32 = 1
)

// ErrBadFormat is returned by deserialize when the stream is authentic
// (the password was correct) but its structure is corrupt or truncated —
// distinguishable from a wrong password per spec.md §4.5's requirement.
var ErrBadFormat = errors.New("corewallet: malformed wallet file")

// serialize writes the header, encrypts, and writes the wallet's
// plaintext body: account keys, createTime, and (if saveDetailed) the
// full transaction cache snapshot, followed by the opaque containerBlob
// produced by the synchroniser's own Save, if non-nil.
func serialize(out io.Writer, account *Account, password string, cache *txcache.Cache,
	saveDetailed bool, containerBlob []byte) error {

	var plain bytes.Buffer

	if _, err := plain.Write(account.SpendKey.Serialize()); err != nil {
		return err
	}
	if _, err := plain.Write(account.ViewKey.Serialize()); err != nil {
		return err
	}
	if err := binary.Write(&plain, binary.BigEndian, account.CreateTime); err != nil {
		return err
	}

	if err := writeFlaggedBlob(&plain, saveDetailed, func() ([]byte, error) {
		var cacheBuf bytes.Buffer
		if err := gob.NewEncoder(&cacheBuf).Encode(cache.Snapshot()); err != nil {
			return nil, err
		}
		return cacheBuf.Bytes(), nil
	}); err != nil {
		return err
	}

	if err := writeFlaggedBlob(&plain, len(containerBlob) > 0, func() ([]byte, error) {
		return containerBlob, nil
	}); err != nil {
		return err
	}

	passwordBytes := []byte(password)
	key, err := snacl.NewSecretKey(&passwordBytes, snacl.DefaultN, snacl.DefaultR, snacl.DefaultP)
	if err != nil {
		return walletError(ErrInternal, "derive encryption key", err)
	}
	defer key.Zero()

	cipherText, err := key.Encrypt(plain.Bytes())
	if err != nil {
		return walletError(ErrInternal, "encrypt wallet body", err)
	}

	if err := binary.Write(out, binary.BigEndian, fileMagic); err != nil {
		return err
	}
	if err := binary.Write(out, binary.BigEndian, fileVersion); err != nil {
		return err
	}

	marshalledKey := key.Marshal()
	if err := binary.Write(out, binary.BigEndian, uint32(len(marshalledKey))); err != nil {
		return err
	}
	if _, err := out.Write(marshalledKey); err != nil {
		return err
	}

	_, err = out.Write(cipherText)
	return err
}

func writeFlaggedBlob(w io.Writer, present bool, produce func() ([]byte, error)) error {
	if !present {
		return binary.Write(w, binary.BigEndian, uint8(0))
	}
	blob, err := produce()
	if err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint8(1)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(blob))); err != nil {
		return err
	}
	_, err = w.Write(blob)
	return err
}

func readFlaggedBlob(r io.Reader) ([]byte, bool, error) {
	var flag uint8
	if err := binary.Read(r, binary.BigEndian, &flag); err != nil {
		return nil, false, ErrBadFormat
	}
	if flag == 0 {
		return nil, false, nil
	}
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, false, ErrBadFormat
	}
	blob := make([]byte, length)
	if _, err := io.ReadFull(r, blob); err != nil {
		return nil, false, ErrBadFormat
	}
	return blob, true, nil
}

// deserialize reads the header, authenticates and decrypts the body with
// password, and returns the account plus the two optional blobs: the
// detailed cache snapshot (gob-encoded, loaded via txcache.Cache.Restore)
// and the opaque synchroniser container blob.
func (w *Wallet) deserialize(r io.Reader, password string) (*Account, []byte, []byte, error) {
	var magic, version uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, nil, nil, ErrBadFormat
	}
	if magic != fileMagic {
		return nil, nil, nil, ErrBadFormat
	}
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, nil, nil, ErrBadFormat
	}
	if version != fileVersion {
		return nil, nil, nil, ErrBadFormat
	}

	var keyLen uint32
	if err := binary.Read(r, binary.BigEndian, &keyLen); err != nil {
		return nil, nil, nil, ErrBadFormat
	}
	marshalledKey := make([]byte, keyLen)
	if _, err := io.ReadFull(r, marshalledKey); err != nil {
		return nil, nil, nil, ErrBadFormat
	}

	var key snacl.SecretKey
	if err := key.Unmarshal(marshalledKey); err != nil {
		return nil, nil, nil, ErrBadFormat
	}
	passwordBytes := []byte(password)
	if err := key.DeriveKey(&passwordBytes); err != nil {
		if errors.Is(err, snacl.ErrInvalidPassword) {
			return nil, nil, nil, ErrWalletWrongPassword
		}
		return nil, nil, nil, walletError(ErrInternal, "derive decryption key", err)
	}
	defer key.Zero()

	cipherText, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, nil, ErrBadFormat
	}

	plainBytes, err := key.Decrypt(cipherText)
	if err != nil {
		if errors.Is(err, snacl.ErrInvalidPassword) {
			return nil, nil, nil, ErrWalletWrongPassword
		}
		return nil, nil, nil, ErrBadFormat
	}
	plain := bytes.NewReader(plainBytes)

	spendKeyBytes := make([]byte, 32)
	if _, err := io.ReadFull(plain, spendKeyBytes); err != nil {
		return nil, nil, nil, ErrBadFormat
	}
	viewKeyBytes := make([]byte, 32)
	if _, err := io.ReadFull(plain, viewKeyBytes); err != nil {
		return nil, nil, nil, ErrBadFormat
	}
	var createTime int64
	if err := binary.Read(plain, binary.BigEndian, &createTime); err != nil {
		return nil, nil, nil, ErrBadFormat
	}

	detailedBlob, _, err := readFlaggedBlob(plain)
	if err != nil {
		return nil, nil, nil, err
	}
	containerBlob, _, err := readFlaggedBlob(plain)
	if err != nil {
		return nil, nil, nil, err
	}

	account, err := importAccount(spendKeyBytes, viewKeyBytes, w.addressFromKeys)
	if err != nil {
		return nil, nil, nil, err
	}
	account.CreateTime = createTime

	return account, detailedBlob, containerBlob, nil
}

func loadCacheBlob(cache *txcache.Cache, blob []byte) error {
	var snap txcache.Snapshot
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&snap); err != nil {
		return err
	}
	cache.Restore(snap)
	return nil
}
