package chain

// Event names as declared by the TaskChain contract.
const (
	EventTaskCreated     = "TaskCreated"
	EventTaskClaimed     = "TaskClaimed"
	EventTaskCompleted   = "TaskCompleted"
	EventReceiptAnchored = "ReceiptAnchored"
)

// contractABI lists the events the indexer subscribes to.
const contractABI = `[
  {
    "type": "event",
    "name": "TaskCreated",
    "anonymous": false,
    "inputs": [
      {"name": "taskId", "type": "uint256", "indexed": true},
      {"name": "creator", "type": "address", "indexed": true},
      {"name": "category", "type": "string", "indexed": false},
      {"name": "priority", "type": "uint8", "indexed": false}
    ]
  },
  {
    "type": "event",
    "name": "TaskClaimed",
    "anonymous": false,
    "inputs": [
      {"name": "taskId", "type": "uint256", "indexed": true},
      {"name": "executor", "type": "address", "indexed": true},
      {"name": "commitment", "type": "uint8", "indexed": false},
      {"name": "deadline", "type": "uint256", "indexed": false}
    ]
  },
  {
    "type": "event",
    "name": "TaskCompleted",
    "anonymous": false,
    "inputs": [
      {"name": "taskId", "type": "uint256", "indexed": true},
      {"name": "executor", "type": "address", "indexed": true},
      {"name": "creator", "type": "address", "indexed": true}
    ]
  },
  {
    "type": "event",
    "name": "ReceiptAnchored",
    "anonymous": false,
    "inputs": [
      {"name": "taskId", "type": "uint256", "indexed": true},
      {"name": "receiptHash", "type": "bytes32", "indexed": false},
      {"name": "ipfsCid", "type": "string", "indexed": false}
    ]
  }
]`
