package model

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestTransferJSONStringValue(t *testing.T) {
	transfer := Transfer{
		ID:        "0x01:001:00",
		TxHash:    common.HexToHash("0x01"),
		LogIndex:  1,
		From:      common.HexToAddress("0x1111111111111111111111111111111111111111"),
		To:        common.HexToAddress("0x2222222222222222222222222222222222222222"),
		AssetType: AssetFixedClaim,
		Kind:      KindMint,
		Value:     big.NewInt(-12345678901234567),
	}

	data, err := json.Marshal(transfer)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if value, ok := decoded["value"].(string); !ok || value != "-12345678901234567" {
		t.Fatalf("value should be a decimal string, got %v", decoded["value"])
	}

	var roundTrip Transfer
	if err := json.Unmarshal(data, &roundTrip); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if roundTrip.Value.Cmp(transfer.Value) != 0 {
		t.Fatalf("value mismatch: %v != %v", roundTrip.Value, transfer.Value)
	}
	if roundTrip.Kind != KindMint || roundTrip.AssetType != AssetFixedClaim {
		t.Fatalf("enum fields lost: %+v", roundTrip)
	}
}

func TestRawEventJSONBigFields(t *testing.T) {
	event := RawEvent{
		Name:     "TransferBatch",
		LogIndex: 7,
		IDs:      []*big.Int{big.NewInt(1), big.NewInt(2)},
		Values:   []*big.Int{big.NewInt(-5), big.NewInt(10)},
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var roundTrip RawEvent
	if err := json.Unmarshal(data, &roundTrip); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(roundTrip.IDs) != 2 || len(roundTrip.Values) != 2 {
		t.Fatalf("arrays lost: %+v", roundTrip)
	}
	if roundTrip.Values[0].Int64() != -5 {
		t.Fatalf("signed value lost: %v", roundTrip.Values[0])
	}
}

func TestEventStoreAppendAssignsIDs(t *testing.T) {
	store := NewEventStore(common.HexToHash("0x02"), 10, 20)

	store.AppendTransfer(&Transfer{LogIndex: 3, Value: big.NewInt(1)})
	store.AppendTransfer(&Transfer{LogIndex: 3, Value: big.NewInt(2)})

	if store.Transfers[0].ID == store.Transfers[1].ID {
		t.Fatalf("batch entries sharing a log index must get distinct ids")
	}
	if store.FirstUnbundled() != 0 {
		t.Fatalf("transfers should start unbundled")
	}
}
