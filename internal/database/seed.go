package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsense/skillsense-ai/internal/model"
)

// Seed 写入默认题目，供按水平随机抽题的面试使用
// 仅在 artifacts 表为空时执行，重复调用无副作用
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Artifact{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	artifacts := []*model.Artifact{
		{
			ID:               uuid.New().String(),
			Level:            model.LevelBeginner,
			ProblemStatement: "Write a function that returns the sum of all even numbers in a list.",
			ProblemSolution:  "def sum_even(nums):\n    total = 0\n    for n in nums:\n        if n % 2 == 0:\n            total += n\n    return total\n",
		},
		{
			ID:               uuid.New().String(),
			Level:            model.LevelIntermediate,
			ProblemStatement: "Write a function that counts word frequencies in a text and returns the top k words.",
			ProblemSolution:  "def top_words(text, k):\n    counts = {}\n    for word in text.split():\n        counts[word] = counts.get(word, 0) + 1\n    return sorted(counts, key=counts.get, reverse=True)[:k]\n",
		},
		{
			ID:               uuid.New().String(),
			Level:            model.LevelExpert,
			ProblemStatement: "Implement an LRU cache with O(1) get and put operations.",
			ProblemSolution:  "from collections import OrderedDict\n\nclass LRUCache:\n    def __init__(self, capacity):\n        self.capacity = capacity\n        self.cache = OrderedDict()\n\n    def get(self, key):\n        if key not in self.cache:\n            return -1\n        self.cache.move_to_end(key)\n        return self.cache[key]\n\n    def put(self, key, value):\n        if key in self.cache:\n            self.cache.move_to_end(key)\n        self.cache[key] = value\n        if len(self.cache) > self.capacity:\n            self.cache.popitem(last=False)\n",
		},
	}

	return db.Create(&artifacts).Error
}
