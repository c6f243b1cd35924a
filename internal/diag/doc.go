// Package diag определяет модель диагностик: коды, серьёзность,
// накопитель (Bag) и интерфейс Reporter.
//
// Слои договорились так:
//   - лексер диагностик не создаёт вообще, он выдаёт Invalid-токены;
//   - парсер превращает Invalid-токены и синтаксические ошибки в
//     Diagnostic и складывает их в Bag;
//   - рендеринг (пакет diagfmt) живёт снаружи и только читает Bag.
//
// Diagnostic — чистое значение: ни одна структура здесь не держит
// ссылок на лексер или парсер, поэтому Bag можно сериализовать,
// сливать по файлам и сортировать как угодно.
package diag
